package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// dualQuaternion defines functions to perform rigid dualQuaternion transformations in 3D.
// The real part is the unit rotation quaternion q and the dual part is 0.5 * t * q.
type dualQuaternion struct {
	dualquat.Number
}

// newDualQuaternion returns a pointer to a new dualQuaternion object whose Quaternion is an identity Quaternion.
// Since the real part of a qual quaternion should be a unit quaternion, not all zeroes, this should be used
// instead of &dualQuaternion{}.
func newDualQuaternion() *dualQuaternion {
	return &dualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// newDualQuaternionFromPose takes any pose, checks if it is already a DQ and returns that if so, otherwise creates a
// new one.
func newDualQuaternionFromPose(p Pose) *dualQuaternion {
	if q, ok := p.(*dualQuaternion); ok {
		return q.Clone()
	}
	q := newDualQuaternion()
	q.Real = Normalize(p.Orientation().Quaternion())
	q.SetTranslation(p.Point())
	return q
}

// newDualQuaternionFromModifiedDH builds the link transform RotX(alpha) * TransX(a) * RotZ(theta) * TransZ(d).
func newDualQuaternionFromModifiedDH(a, d, alpha, theta float64) *dualQuaternion {
	m := mgl64.HomogRotate3DX(alpha).
		Mul4(mgl64.Translate3D(a, 0, 0)).
		Mul4(mgl64.HomogRotate3DZ(theta)).
		Mul4(mgl64.Translate3D(0, 0, d))

	qRot := mgl64.Mat4ToQuat(m)
	q := newDualQuaternion()
	q.Real = Normalize(quat.Number{Real: qRot.W, Imag: qRot.X(), Jmag: qRot.Y(), Kmag: qRot.Z()})
	pt := m.Col(3)
	q.SetTranslation(r3.Vector{X: pt.X(), Y: pt.Y(), Z: pt.Z()})
	return q
}

// Clone returns a dualQuaternion object identical to this one.
func (q *dualQuaternion) Clone() *dualQuaternion {
	// No need for deep copies here, dualquats are primitives all the way down
	return &dualQuaternion{q.Number}
}

// Point multiplies the dual quaternion by its own conjugate to give the translation.
func (q *dualQuaternion) Point() r3.Vector {
	t := quat.Scale(2, quat.Mul(q.Dual, quat.Conj(q.Real)))
	return r3.Vector{X: t.Imag, Y: t.Jmag, Z: t.Kmag}
}

// Orientation returns the rotation quaternion as an Orientation.
func (q *dualQuaternion) Orientation() Orientation {
	rot := quaternion(q.Real)
	return &rot
}

// SetTranslation correctly sets the translation quaternion against the rotation.
func (q *dualQuaternion) SetTranslation(pt r3.Vector) {
	q.Dual = quat.Scale(0.5, quat.Mul(quat.Number{Imag: pt.X, Jmag: pt.Y, Kmag: pt.Z}, q.Real))
}

// Invert returns a dualQuaternion representing the opposite transformation. So if the input q would transform a -> b,
// then Invert(p) will transform b -> a.
func (q *dualQuaternion) Invert() *dualQuaternion {
	return &dualQuaternion{dualquat.Number{Real: quat.Conj(q.Real), Dual: quat.Conj(q.Dual)}}
}

// Transformation multiplies the dual quat contained in this dualQuaternion by another dual quat.
func (q *dualQuaternion) Transformation(by dualquat.Number) dualquat.Number {
	// Ensure we are multiplying by a unit dual quaternion
	if vecLen := quat.Abs(by.Real); vecLen != 1 && vecLen != 0 {
		by.Real = quat.Scale(1/vecLen, by.Real)
		by.Dual = quat.Scale(1/vecLen, by.Dual)
	}

	return dualquat.Mul(q.Number, by)
}
