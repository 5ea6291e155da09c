package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// defaultPoseEpsilon is the tolerance used by PoseAlmostEqual and PoseAlmostCoincident.
const defaultPoseEpsilon = 1e-8

// Pose represents a 6dof pose, position and orientation, with respect to some frame.
// Translation is expressed in meters.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// NewZeroPose returns a pose at (0,0,0) with same orientation as whatever frame it is placed in.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPose takes in a position and orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	q := newDualQuaternion()
	q.Real = Normalize(o.Quaternion())
	q.SetTranslation(p)
	return q
}

// NewPoseFromOrientation returns a pose with no translation and the given orientation.
func NewPoseFromOrientation(o Orientation) Pose {
	return NewPose(r3.Vector{}, o)
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a vector.
// It will have the same orientation as the frame it is in.
func NewPoseFromPoint(point r3.Vector) Pose {
	q := newDualQuaternion()
	q.SetTranslation(point)
	return q
}

// NewPoseFromModifiedDH creates a pose from modified (Craig) Denavit-Hartenberg parameters for a revolute joint at
// angle theta: RotX(alpha) * TransX(a) * RotZ(theta) * TransZ(d).
func NewPoseFromModifiedDH(a, d, alpha, theta float64) Pose {
	return newDualQuaternionFromModifiedDH(a, d, alpha, theta)
}

// Compose takes in two poses and returns the pose given by applying b in the frame of a.
func Compose(a, b Pose) Pose {
	aq := newDualQuaternionFromPose(a)
	bq := newDualQuaternionFromPose(b)
	return &dualQuaternion{aq.Transformation(bq.Number)}
}

// PoseInverse will return the inverse of a pose. So if a given pose p is the pose of A relative to B, PoseInverse(p)
// will give the pose of B relative to A.
func PoseInverse(p Pose) Pose {
	return newDualQuaternionFromPose(p).Invert()
}

// PoseBetween returns the difference between two dualQuaternions, that is, the dq which if multiplied by one will give
// the other. Example: if PoseBetween(a, b) = c, then Compose(a, c) = b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// PoseDelta returns the difference between two poses in the frame they share: the translation b - a and the
// orientation rotating a onto b.
func PoseDelta(a, b Pose) Pose {
	return NewPose(b.Point().Sub(a.Point()), OrientationBetween(a.Orientation(), b.Orientation()))
}

// PoseMap converts a pose to its ordered translation and axis angle components.
func PoseMap(p Pose) map[string]float64 {
	aa := p.Orientation().AxisAngles()
	pt := p.Point()
	return map[string]float64{
		"x": pt.X, "y": pt.Y, "z": pt.Z,
		"theta": aa.Theta, "rx": aa.RX, "ry": aa.RY, "rz": aa.RZ,
	}
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, defaultPoseEpsilon)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) &&
		OrientationAlmostEqualEps(a.Orientation(), b.Orientation(), epsilon)
}

// PoseAlmostCoincident will return a bool describing whether 2 poses approximately are at the same 3D coordinate location.
// This uses the same epsilon as the default value for the Viam IK solver.
func PoseAlmostCoincident(a, b Pose) bool {
	return PoseAlmostCoincidentEps(a, b, defaultPoseEpsilon)
}

// PoseAlmostCoincidentEps will return a bool describing whether 2 poses approximately are at the same 3D coordinate location.
func PoseAlmostCoincidentEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon)
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	d := a.Sub(b)
	return d.X <= epsilon && d.X >= -epsilon &&
		d.Y <= epsilon && d.Y >= -epsilon &&
		d.Z <= epsilon && d.Z >= -epsilon
}

// PrettyPrint returns a human readable translation and axis angle description of a pose.
func PrettyPrint(p Pose) string {
	pt := p.Point()
	aa := p.Orientation().AxisAngles()
	return fmt.Sprintf("{X:%.4f Y:%.4f Z:%.4f Theta:%.4f RX:%.4f RY:%.4f RZ:%.4f}", pt.X, pt.Y, pt.Z, aa.Theta, aa.RX, aa.RY, aa.RZ)
}
