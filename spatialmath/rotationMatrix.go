package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/robofin/utils"
)

// rotationMatrixTolerance bounds how far R * R^T may drift from identity before a matrix is rejected.
const rotationMatrixTolerance = 1e-6

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from a slice of 9 floats in row major order.
// The matrix must be orthonormal with determinant +1.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], m)
	if err := rm.validate(); err != nil {
		return nil, err
	}
	return rm, nil
}

// NewRotationMatrixFromColumns builds a rotation matrix whose columns are the given axes. The axes are not validated.
func NewRotationMatrixFromColumns(x, y, z r3.Vector) *RotationMatrix {
	return &RotationMatrix{[9]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}}
}

func (rm *RotationMatrix) validate() error {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			expected := 0.
			if i == j {
				expected = 1.
			}
			if !utils.Float64AlmostEqual(rm.Row(i).Dot(rm.Row(j)), expected, rotationMatrixTolerance) {
				return errors.New("rotation matrix rows are not orthonormal")
			}
		}
	}
	if det := rm.Row(0).Dot(rm.Row(1).Cross(rm.Row(2))); !utils.Float64AlmostEqual(det, 1, rotationMatrixTolerance) {
		return errors.Errorf("rotation matrix determinant is %f, need +1", det)
	}
	return nil
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// Quaternion returns orientation in quaternion representation.
// reference: https://www.euclideanspace.com/maths/geometry/rotations/conversions/matrixToQuaternion/index.htm
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := rm.mat
	var w, x, y, z float64
	switch tr := m[0] + m[4] + m[8]; {
	case tr > 0:
		s := 2 * math.Sqrt(tr+1)
		w = 0.25 * s
		x = (m[7] - m[5]) / s
		y = (m[2] - m[6]) / s
		z = (m[3] - m[1]) / s
	case m[0] > m[4] && m[0] > m[8]:
		s := 2 * math.Sqrt(1+m[0]-m[4]-m[8])
		w = (m[7] - m[5]) / s
		x = 0.25 * s
		y = (m[1] + m[3]) / s
		z = (m[2] + m[6]) / s
	case m[4] > m[8]:
		s := 2 * math.Sqrt(1+m[4]-m[0]-m[8])
		w = (m[2] - m[6]) / s
		x = (m[1] + m[3]) / s
		y = 0.25 * s
		z = (m[5] + m[7]) / s
	default:
		s := 2 * math.Sqrt(1+m[8]-m[0]-m[4])
		w = (m[3] - m[1]) / s
		x = (m[2] + m[6]) / s
		y = (m[5] + m[7]) / s
		z = 0.25 * s
	}
	return Normalize(quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z})
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	aa := QuatToR4AA(rm.Quaternion())
	return &aa
}

// EulerAngles returns orientation in Euler angle representation.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(rm.Quaternion())
}

// At returns the float corresponding to the element at the specified location.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns a 3 element vector corresponding to the specified row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[row*3], Y: rm.mat[row*3+1], Z: rm.mat[row*3+2]}
}

// Col returns a 3 element vector corresponding to the specified column.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[col+3], Z: rm.mat[col+6]}
}

// Transpose returns the transpose of the matrix, which for a rotation is its inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	m := rm.mat
	return &RotationMatrix{[9]float64{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}}
}

// Mul returns rm * other.
func (rm *RotationMatrix) Mul(other *RotationMatrix) *RotationMatrix {
	out := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.mat[r*3+c] = rm.Row(r).Dot(other.Col(c))
		}
	}
	return out
}

// MulVec returns rm * v.
func (rm *RotationMatrix) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

// Slice returns the matrix in row major order.
func (rm *RotationMatrix) Slice() []float64 {
	out := make([]float64, 9)
	copy(out, rm.mat[:])
	return out
}

func (rm *RotationMatrix) String() string {
	m := rm.mat
	return fmt.Sprintf("[%.4f %.4f %.4f; %.4f %.4f %.4f; %.4f %.4f %.4f]", m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}
