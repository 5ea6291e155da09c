package kinematics

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/robofin/spatialmath"
)

var (
	// ErrInvalidFrame is returned when a requested end effector frame is not supported by the robot.
	ErrInvalidFrame = errors.New("invalid frame")
	// ErrOutOfRange is returned when a pinned joint value lies outside its limit.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidArgument is returned for malformed arguments such as an unknown sampling method.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupported is returned when an operation is outside the robot profile's capabilities.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrIKFailure matches any *IKFailureError with errors.Is.
	ErrIKFailure = errors.New("inverse kinematics failed")
)

// NewInvalidFrameError returns an error naming the rejected frame and the frames that would have been accepted.
func NewInvalidFrameError(frame string, supported []string) error {
	return errors.Wrapf(ErrInvalidFrame, "%q is not one of %v", frame, supported)
}

// NewOutOfRangeError returns an error indicating that joint index has a value outside [lo, hi].
func NewOutOfRangeError(joint int, value, lo, hi float64) error {
	return errors.Wrapf(ErrOutOfRange, "joint %d value %f outside limits [%f, %f]", joint, value, lo, hi)
}

// NewInvalidArgumentError wraps ErrInvalidArgument with a description of the bad argument.
func NewInvalidArgumentError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// NewUnsupportedError returns an error indicating the profile lacks the capability.
func NewUnsupportedError(profile string, capability Capability) error {
	return errors.Wrapf(ErrUnsupported, "%s does not support %s", profile, capability)
}

// IKFailureError is returned when the solver fails for a pose. It carries the pose that was attempted.
type IKFailureError struct {
	Pose  spatialmath.Pose
	Frame string
	Err   error
}

// NewIKFailureError wraps err with the pose and frame that were being solved for.
func NewIKFailureError(pose spatialmath.Pose, frame string, err error) error {
	return &IKFailureError{Pose: pose, Frame: frame, Err: err}
}

func (e *IKFailureError) Error() string {
	return fmt.Sprintf("inverse kinematics failed for pose %s in frame %q: %v", spatialmath.PrettyPrint(e.Pose), e.Frame, e.Err)
}

func (e *IKFailureError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, ErrIKFailure).
func (e *IKFailureError) Is(target error) bool {
	return target == ErrIKFailure
}
