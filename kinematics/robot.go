// Package kinematics adapts a closed form solver for a redundant arm into frame aware forward and inverse
// kinematics, joint limit checks, random sampling and a collision gated inverse kinematics search.
package kinematics

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/robofin/logging"
	"go.viam.com/robofin/referenceframe"
	"go.viam.com/robofin/spatialmath"
)

// Solver is a closed form kinematics solver working in a robot's native frame.
type Solver interface {
	// ForwardKinematics returns the native frame position and rotation for a full configuration.
	ForwardKinematics(inputs []referenceframe.Input) (r3.Vector, *spatialmath.RotationMatrix, error)
	// InverseKinematics returns every configuration reaching the pose with the last joint held at pinned.
	// No solutions is an empty result and a nil error.
	InverseKinematics(point r3.Vector, rotation *spatialmath.RotationMatrix, pinned referenceframe.Input) ([][]referenceframe.Input, error)
}

// Robot answers kinematics queries for one profile. It holds no mutable state and is safe for concurrent use.
type Robot struct {
	profile *Profile
	solver  Solver
	logger  logging.Logger
}

// NewRobot returns a Robot for the profile. The solver may be nil only if the profile lacks kinematics.
func NewRobot(profile *Profile, solver Solver, logger logging.Logger) (*Robot, error) {
	if profile == nil {
		return nil, errors.New("robot profile is required")
	}
	if solver == nil && profile.Supports(CapabilityKinematics) {
		return nil, errors.Errorf("%s supports kinematics but no solver was given", profile.Name())
	}
	if logger == nil {
		logger = logging.NewBlankLogger(profile.Name())
	}
	return &Robot{profile: profile, solver: solver, logger: logger}, nil
}

// Profile returns the robot's profile.
func (r *Robot) Profile() *Profile {
	return r.profile
}

// DefaultFrame returns the end effector frame used when none is named.
func (r *Robot) DefaultFrame() string {
	return r.profile.DefaultFrame()
}

func (r *Robot) require(c Capability) error {
	if !r.profile.Supports(c) {
		return NewUnsupportedError(r.profile.Name(), c)
	}
	return nil
}

// ForwardKinematics returns the pose of frame for the configuration.
func (r *Robot) ForwardKinematics(inputs []referenceframe.Input, frame string) (spatialmath.Pose, error) {
	if err := r.require(CapabilityKinematics); err != nil {
		return nil, err
	}
	offset, err := r.profile.Offset(frame)
	if err != nil {
		return nil, err
	}
	if len(inputs) != r.profile.DoF() {
		return nil, referenceframe.NewIncorrectDoFError(len(inputs), r.profile.DoF())
	}
	point, rotation, err := r.solver.ForwardKinematics(inputs)
	if err != nil {
		return nil, errors.Wrap(err, "forward kinematics")
	}
	pose := spatialmath.NewPose(point, rotation)
	if frame == r.profile.NativeFrame() {
		return pose, nil
	}
	return spatialmath.Compose(pose, offset), nil
}

// InverseKinematics returns every configuration within limits that places frame at pose with the last joint held
// at pinned. An empty result means there is no solution.
func (r *Robot) InverseKinematics(pose spatialmath.Pose, pinned referenceframe.Input, frame string) ([][]referenceframe.Input, error) {
	if err := r.require(CapabilityKinematics); err != nil {
		return nil, err
	}
	offset, err := r.profile.Offset(frame)
	if err != nil {
		return nil, err
	}
	last := r.profile.DoF() - 1
	if lim := r.profile.limits[last]; !lim.Contains(pinned.Value, 0) {
		return nil, NewOutOfRangeError(last, pinned.Value, lim.Min, lim.Max)
	}
	if frame != r.profile.NativeFrame() {
		pose = spatialmath.Compose(pose, spatialmath.PoseInverse(offset))
	}

	solutions, err := r.solver.InverseKinematics(pose.Point(), pose.Orientation().RotationMatrix(), pinned)
	if err != nil {
		return nil, errors.Wrap(err, "inverse kinematics")
	}
	return lo.Filter(solutions, func(solution []referenceframe.Input, _ int) bool {
		return r.WithinLimits(solution)
	}), nil
}
