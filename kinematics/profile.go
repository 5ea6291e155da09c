package kinematics

import (
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/robofin/referenceframe"
	"go.viam.com/robofin/spatialmath"
)

// Capability names an optional operation a robot profile may support.
type Capability string

// The capabilities a profile can declare.
const (
	CapabilityKinematics          = Capability("kinematics")
	CapabilityRandomConfiguration = Capability("random_configuration")
	CapabilityRandomNeutral       = Capability("random_neutral")
)

var knownCapabilities = []Capability{CapabilityKinematics, CapabilityRandomConfiguration, CapabilityRandomNeutral}

// FrameOffsetConfig is the fixed transform from a parent frame to a named end effector frame.
// XYZ is in meters and RPY is roll, pitch, yaw in radians.
type FrameOffsetConfig struct {
	Parent string     `json:"parent"`
	XYZ    [3]float64 `json:"xyz"`
	RPY    [3]float64 `json:"rpy"`
}

// Pose converts the offset to a pose.
func (cfg FrameOffsetConfig) Pose() spatialmath.Pose {
	return spatialmath.NewPose(
		r3.Vector{X: cfg.XYZ[0], Y: cfg.XYZ[1], Z: cfg.XYZ[2]},
		&spatialmath.EulerAngles{Roll: cfg.RPY[0], Pitch: cfg.RPY[1], Yaw: cfg.RPY[2]},
	)
}

// ProfileConfig is the serialized form of a Profile.
type ProfileConfig struct {
	Name         string                       `json:"name"`
	Limits       []referenceframe.Limit       `json:"limits"`
	Neutral      []float64                    `json:"neutral"`
	NativeFrame  string                       `json:"native_frame"`
	DefaultFrame string                       `json:"default_frame,omitempty"`
	Offsets      map[string]FrameOffsetConfig `json:"offsets,omitempty"`
	Capabilities []Capability                 `json:"capabilities"`
}

// Validate checks the config and returns every problem found.
func (cfg *ProfileConfig) Validate() error {
	var err error
	if cfg.Name == "" {
		err = multierr.Append(err, errors.New("profile name is required"))
	}
	if len(cfg.Limits) == 0 {
		err = multierr.Append(err, errors.Errorf("%s: at least one joint limit is required", cfg.Name))
	}
	for i, lim := range cfg.Limits {
		if lim.Min > lim.Max {
			err = multierr.Append(err, errors.Wrap(referenceframe.NewLimitsInvertedError(i, lim), cfg.Name))
		}
	}
	if len(cfg.Neutral) != len(cfg.Limits) {
		err = multierr.Append(err, errors.Wrapf(
			referenceframe.NewIncorrectDoFError(len(cfg.Neutral), len(cfg.Limits)), "%s: neutral", cfg.Name))
	} else if !referenceframe.WithinLimits(referenceframe.FloatsToInputs(cfg.Neutral), cfg.Limits, 0) {
		err = multierr.Append(err, errors.Errorf("%s: neutral configuration %v is outside the joint limits", cfg.Name, cfg.Neutral))
	}
	if cfg.NativeFrame == "" {
		err = multierr.Append(err, errors.Errorf("%s: native frame is required", cfg.Name))
	}
	for name, offset := range cfg.Offsets {
		if name == cfg.NativeFrame {
			err = multierr.Append(err, errors.Errorf("%s: native frame %q cannot have an offset", cfg.Name, name))
		}
		if offset.Parent != cfg.NativeFrame {
			err = multierr.Append(err, errors.Errorf("%s: offset %q must be keyed from %q, not %q",
				cfg.Name, name, cfg.NativeFrame, offset.Parent))
		}
	}
	if cfg.DefaultFrame != "" && cfg.DefaultFrame != cfg.NativeFrame {
		if _, ok := cfg.Offsets[cfg.DefaultFrame]; !ok {
			err = multierr.Append(err, errors.Errorf("%s: default frame %q has no offset", cfg.Name, cfg.DefaultFrame))
		}
	}
	for _, c := range cfg.Capabilities {
		if !slices.Contains(knownCapabilities, c) {
			err = multierr.Append(err, errors.Errorf("%s: unknown capability %q", cfg.Name, c))
		}
	}
	return err
}

// Profile bundles the constants that describe one robot variant. It is immutable once built.
type Profile struct {
	name         string
	limits       []referenceframe.Limit
	neutral      []referenceframe.Input
	nativeFrame  string
	defaultFrame string
	offsets      map[string]spatialmath.Pose
	frames       []string
	capabilities map[Capability]bool
}

// NewProfile validates cfg and builds a Profile from it.
func NewProfile(cfg ProfileConfig) (*Profile, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	offsets := lo.MapValues(cfg.Offsets, func(offset FrameOffsetConfig, _ string) spatialmath.Pose {
		return offset.Pose()
	})
	names := lo.Keys(offsets)
	slices.Sort(names)

	defaultFrame := cfg.DefaultFrame
	if defaultFrame == "" {
		defaultFrame = cfg.NativeFrame
	}
	return &Profile{
		name:         cfg.Name,
		limits:       slices.Clone(cfg.Limits),
		neutral:      referenceframe.FloatsToInputs(cfg.Neutral),
		nativeFrame:  cfg.NativeFrame,
		defaultFrame: defaultFrame,
		offsets:      offsets,
		frames:       append([]string{cfg.NativeFrame}, names...),
		capabilities: lo.SliceToMap(cfg.Capabilities, func(c Capability) (Capability, bool) { return c, true }),
	}, nil
}

// Name returns the profile name.
func (p *Profile) Name() string {
	return p.name
}

// DoF returns the number of joints.
func (p *Profile) DoF() int {
	return len(p.limits)
}

// Limits returns a copy of the joint limits.
func (p *Profile) Limits() []referenceframe.Limit {
	return slices.Clone(p.limits)
}

// Neutral returns a copy of the neutral configuration.
func (p *Profile) Neutral() []referenceframe.Input {
	return slices.Clone(p.neutral)
}

// NativeFrame is the frame the solver works in.
func (p *Profile) NativeFrame() string {
	return p.nativeFrame
}

// DefaultFrame is used when a caller does not name a frame.
func (p *Profile) DefaultFrame() string {
	return p.defaultFrame
}

// SupportedFrames lists the native frame followed by the offset frames in sorted order.
func (p *Profile) SupportedFrames() []string {
	return slices.Clone(p.frames)
}

// Supports reports whether the profile declares the capability.
func (p *Profile) Supports(c Capability) bool {
	return p.capabilities[c]
}

// Offset returns the transform from the native frame to frame. The native frame has a zero offset.
func (p *Profile) Offset(frame string) (spatialmath.Pose, error) {
	if frame == p.nativeFrame {
		return spatialmath.NewZeroPose(), nil
	}
	offset, ok := p.offsets[frame]
	if !ok {
		return nil, NewInvalidFrameError(frame, p.frames)
	}
	return offset, nil
}
