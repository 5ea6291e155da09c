package collision

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/robofin/referenceframe"
	"go.viam.com/robofin/spatialmath"
)

// slider places link "base" at the origin and link "tip" at x = inputs[0] + prismatic.
func slider(inputs []referenceframe.Input, prismatic float64) (map[string]spatialmath.Pose, error) {
	return map[string]spatialmath.Pose{
		"base": spatialmath.NewZeroPose(),
		"tip":  spatialmath.NewPoseFromPoint(r3.Vector{X: inputs[0].Value + prismatic}),
	}, nil
}

var sliderModel = SphereModel{
	"base": {{Center: [3]float64{0, 0, 0}, Radius: 0.1}},
	"tip":  {{Center: [3]float64{0, 0, 0.05}, Radius: 0.05}, {Center: [3]float64{0, 0, -0.05}, Radius: 0.05}},
}

func TestNewChecker(t *testing.T) {
	_, err := NewChecker(nil, sliderModel)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewChecker(slider, SphereModel{
		"base": {{Radius: 0}},
		"tip":  {{Radius: -1}, {Radius: 1}},
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, len(multierr.Errors(err)), test.ShouldEqual, 2)
}

func TestSpheres(t *testing.T) {
	checker, err := NewChecker(slider, sliderModel)
	test.That(t, err, test.ShouldBeNil)
	spheres, err := checker.Spheres([]referenceframe.Input{{Value: 1}}, 0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(spheres), test.ShouldEqual, 3)
	test.That(t, spheres[0].Label(), test.ShouldEqual, "base")
	test.That(t, spatialmath.R3VectorAlmostEqual(spheres[1].Pose().Point(), r3.Vector{X: 1.5, Z: 0.05}, 1e-12), test.ShouldBeTrue)
}

func TestCollides(t *testing.T) {
	checker, err := NewChecker(slider, sliderModel)
	test.That(t, err, test.ShouldBeNil)
	wall, err := spatialmath.NewBox(spatialmath.NewPoseFromPoint(r3.Vector{X: 1}), r3.Vector{X: 0.2, Y: 1, Z: 1}, "wall")
	test.That(t, err, test.ShouldBeNil)
	obstacles := []spatialmath.Geometry{wall}

	for _, tc := range []struct {
		name      string
		position  float64
		prismatic float64
		buffer    float64
		collides  bool
	}{
		{"clear", 0.5, 0, 0, false},
		{"touching inside buffer", 0.5, 0, 0.4, true},
		{"inside wall", 1, 0, 0, true},
		{"fingers push into wall", 0.5, 0.4, 0, true},
		{"negative buffer allows overlap", 0.86, 0, -0.02, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			collides, err := checker.Collides([]referenceframe.Input{{Value: tc.position}}, tc.prismatic, obstacles, tc.buffer)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, collides, test.ShouldEqual, tc.collides)
		})
	}

	collides, err := checker.Collides([]referenceframe.Input{{Value: 1}}, 0, nil, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, collides, test.ShouldBeFalse)
}

func TestMinDistance(t *testing.T) {
	checker, err := NewChecker(slider, sliderModel)
	test.That(t, err, test.ShouldBeNil)
	ball, err := spatialmath.NewSphere(spatialmath.NewPoseFromPoint(r3.Vector{X: -1}), 0.2, "ball")
	test.That(t, err, test.ShouldBeNil)

	d, err := checker.MinDistance([]referenceframe.Input{{Value: 3}}, 0, []spatialmath.Geometry{ball})
	test.That(t, err, test.ShouldBeNil)
	// the base sphere is closest: 1 - 0.2 - 0.1
	test.That(t, d, test.ShouldAlmostEqual, 0.7)

	d, err = checker.MinDistance([]referenceframe.Input{{Value: 3}}, 0, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, math.IsInf(d, 1), test.ShouldBeTrue)
}

func TestMissingLinkPose(t *testing.T) {
	model := SphereModel{"elbow": {{Radius: 0.1}}}
	checker, err := NewChecker(slider, model)
	test.That(t, err, test.ShouldBeNil)
	ball, err := spatialmath.NewSphere(spatialmath.NewZeroPose(), 0.2, "ball")
	test.That(t, err, test.ShouldBeNil)
	_, err = checker.Collides([]referenceframe.Input{{Value: 0}}, 0, []spatialmath.Geometry{ball}, 0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = checker.Spheres([]referenceframe.Input{{Value: 0}}, 0)
	test.That(t, err, test.ShouldNotBeNil)
}
