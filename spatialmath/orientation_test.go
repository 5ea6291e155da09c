package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// represent a 45 degree rotation around the x axis in all the representations
var (
	th    = math.Pi / 4.
	// in quaternion representation
	q45x  = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.)}
	// in axis-angle representation
	aa45x = &R4AA{Theta: th, RX: 1., RY: 0., RZ: 0.}
	// in euler angle representation
	ea45x = &EulerAngles{Roll: th, Pitch: 0, Yaw: 0}
	rm45x = &RotationMatrix{[9]float64{
		1, 0, 0,
		0, math.Cos(th), -math.Sin(th),
		0, math.Sin(th), math.Cos(th),
	}}
)

func TestZeroOrientation(t *testing.T) {
	zero := NewZeroOrientation()
	test.That(t, zero.AxisAngles(), test.ShouldResemble, NewR4AA())
	test.That(t, zero.Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, zero.EulerAngles(), test.ShouldResemble, NewEulerAngles())
	test.That(t, zero.RotationMatrix().Slice(), test.ShouldResemble, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

func TestConversions(t *testing.T) {
	for _, o := range []Orientation{NewOrientationFromQuaternion(q45x), aa45x, ea45x, rm45x} {
		test.That(t, QuaternionAlmostEqual(o.Quaternion(), q45x, 1e-9), test.ShouldBeTrue)

		aa := o.AxisAngles()
		test.That(t, aa.Theta, test.ShouldAlmostEqual, aa45x.Theta)
		test.That(t, aa.RX, test.ShouldAlmostEqual, aa45x.RX)
		test.That(t, aa.RY, test.ShouldAlmostEqual, aa45x.RY)
		test.That(t, aa.RZ, test.ShouldAlmostEqual, aa45x.RZ)

		ea := o.EulerAngles()
		test.That(t, ea.Roll, test.ShouldAlmostEqual, ea45x.Roll)
		test.That(t, ea.Pitch, test.ShouldAlmostEqual, ea45x.Pitch)
		test.That(t, ea.Yaw, test.ShouldAlmostEqual, ea45x.Yaw)

		rm := o.RotationMatrix()
		for i := 0; i < 9; i++ {
			test.That(t, rm.mat[i], test.ShouldAlmostEqual, rm45x.mat[i])
		}
	}
}

func TestEulerAnglesComposition(t *testing.T) {
	// rpy applies roll first, then pitch, then yaw about the fixed axes
	ea := &EulerAngles{Roll: 0.3, Pitch: -0.2, Yaw: 1.1}
	rx := (&R4AA{Theta: 0.3, RX: 1, RY: 0, RZ: 0}).RotationMatrix()
	ry := (&R4AA{Theta: -0.2, RX: 0, RY: 1, RZ: 0}).RotationMatrix()
	rz := (&R4AA{Theta: 1.1, RX: 0, RY: 0, RZ: 1}).RotationMatrix()
	expected := rz.Mul(ry).Mul(rx)
	actual := ea.RotationMatrix()
	for i := 0; i < 9; i++ {
		test.That(t, actual.mat[i], test.ShouldAlmostEqual, expected.mat[i])
	}

	back := actual.EulerAngles()
	test.That(t, back.Roll, test.ShouldAlmostEqual, ea.Roll)
	test.That(t, back.Pitch, test.ShouldAlmostEqual, ea.Pitch)
	test.That(t, back.Yaw, test.ShouldAlmostEqual, ea.Yaw)
}

func TestRotationMatrix(t *testing.T) {
	_, err := NewRotationMatrix([]float64{1, 0, 0})
	test.That(t, err, test.ShouldNotBeNil)

	// reflection has determinant -1
	_, err = NewRotationMatrix([]float64{-1, 0, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewRotationMatrix([]float64{2, 0, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, err, test.ShouldNotBeNil)

	rm, err := NewRotationMatrix(rm45x.Slice())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rm.At(1, 2), test.ShouldAlmostEqual, -math.Sin(th))
	test.That(t, rm.Row(2), test.ShouldResemble, rm45x.Row(2))
	test.That(t, rm.Col(0), test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 0})

	identity := rm.Mul(rm.Transpose())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			expected := 0.
			if i == j {
				expected = 1.
			}
			test.That(t, identity.At(i, j), test.ShouldAlmostEqual, expected)
		}
	}

	v := rm.MulVec(r3.Vector{X: 0, Y: 1, Z: 0})
	test.That(t, R3VectorAlmostEqual(v, r3.Vector{X: 0, Y: math.Cos(th), Z: math.Sin(th)}, 1e-12), test.ShouldBeTrue)
}

func TestRotationMatrixQuaternionBranches(t *testing.T) {
	// rotations by pi exercise every non-trace branch of the matrix to quaternion conversion
	for _, axis := range []r3.Vector{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1}} {
		aa := &R4AA{Theta: math.Pi, RX: axis.X, RY: axis.Y, RZ: axis.Z}
		q := aa.RotationMatrix().Quaternion()
		test.That(t, QuaternionAlmostEqual(q, aa.ToQuat(), 1e-9), test.ShouldBeTrue)
	}
}

func TestOrientationBetween(t *testing.T) {
	o1 := &EulerAngles{Roll: 0.1, Pitch: 0.2, Yaw: 0.3}
	o2 := &R4AA{Theta: 1.2, RX: 0, RY: 1, RZ: 1}
	between := OrientationBetween(o1, o2)
	recovered := quat.Mul(between.Quaternion(), o1.Quaternion())
	test.That(t, QuaternionAlmostEqual(recovered, o2.Quaternion(), 1e-9), test.ShouldBeTrue)

	identity := quat.Mul(OrientationInverse(o2).Quaternion(), o2.Quaternion())
	test.That(t, QuaternionAlmostEqual(identity, quat.Number{Real: 1}, 1e-9), test.ShouldBeTrue)
}

func TestQuaternionAlmostEqualDoubleCover(t *testing.T) {
	test.That(t, QuaternionAlmostEqual(q45x, Flip(q45x), 1e-9), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(q45x, quat.Number{Real: 1}, 1e-3), test.ShouldBeFalse)
}

func TestR3ToR4(t *testing.T) {
	test.That(t, R3ToR4(r3.Vector{}), test.ShouldResemble, NewR4AA())
	aa := R3ToR4(r3.Vector{X: 0, Y: 0, Z: 2})
	test.That(t, aa.Theta, test.ShouldAlmostEqual, 2.)
	test.That(t, aa.RZ, test.ShouldAlmostEqual, 1.)
	test.That(t, aa.ToR3(), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 2})
	test.That(t, (&R4AA{Theta: 1, RX: 0, RY: 0, RZ: 0}).ToQuat(), test.ShouldResemble, quat.Number{Real: 1})
}
