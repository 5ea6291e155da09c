package kinematics

import (
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/robofin/referenceframe"
)

func TestProfileAccessors(t *testing.T) {
	profile, err := NewProfile(testProfileConfig())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, profile.Name(), test.ShouldEqual, "planar")
	test.That(t, profile.DoF(), test.ShouldEqual, 3)
	test.That(t, profile.NativeFrame(), test.ShouldEqual, "link")
	test.That(t, profile.DefaultFrame(), test.ShouldEqual, "tool")
	test.That(t, profile.SupportedFrames(), test.ShouldResemble, []string{"link", "mount", "tool"})
	test.That(t, profile.Supports(CapabilityKinematics), test.ShouldBeTrue)

	// accessors hand out copies
	limits := profile.Limits()
	limits[0].Min = -100
	test.That(t, profile.Limits()[0].Min, test.ShouldEqual, -1.)
	neutral := profile.Neutral()
	neutral[2].Value = 100
	test.That(t, profile.Neutral()[2].Value, test.ShouldEqual, 0.5)

	_, err = profile.Offset("camera")
	test.That(t, err, test.ShouldNotBeNil)
	zero, err := profile.Offset("link")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, zero.Point().Norm(), test.ShouldEqual, 0.)
}

func TestProfileDefaultFrame(t *testing.T) {
	cfg := testProfileConfig()
	cfg.DefaultFrame = ""
	profile, err := NewProfile(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, profile.DefaultFrame(), test.ShouldEqual, "link")
}

func TestProfileValidation(t *testing.T) {
	cfg := ProfileConfig{
		Limits:       []referenceframe.Limit{{Min: 1, Max: -1}, {Min: 0, Max: 1}},
		Neutral:      []float64{0},
		DefaultFrame: "tool",
		Offsets: map[string]FrameOffsetConfig{
			"tool": {Parent: "elsewhere"},
		},
		Capabilities: []Capability{"teleport"},
	}
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	// name, inverted limit, neutral length, native frame, offset parent, unknown capability
	test.That(t, len(multierr.Errors(err)), test.ShouldEqual, 6)

	_, err = NewProfile(cfg)
	test.That(t, err, test.ShouldNotBeNil)

	good := testProfileConfig()
	good.Neutral = []float64{0, 0, 3}
	err = good.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "outside the joint limits")

	good = testProfileConfig()
	good.DefaultFrame = "camera"
	test.That(t, good.Validate(), test.ShouldNotBeNil)

	good = testProfileConfig()
	good.Offsets["link"] = FrameOffsetConfig{Parent: "link"}
	test.That(t, good.Validate(), test.ShouldNotBeNil)

	good = testProfileConfig()
	test.That(t, good.Validate(), test.ShouldBeNil)
}
