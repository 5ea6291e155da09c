package panda

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/robofin/spatialmath"
)

// polishedJoints is the number of joints adjusted by polish. Joint 7 stays pinned.
const polishedJoints = DoF - 1

// poseError returns the six vector from the pose at q to target: the translation difference followed by the
// rotation vector taking the current orientation onto the target, both in the base frame.
func poseError(current, target spatialmath.Pose) []float64 {
	dp := target.Point().Sub(current.Point())
	rot := rotationVector(quat.Mul(target.Orientation().Quaternion(), quat.Conj(current.Orientation().Quaternion())))
	return []float64{dp.X, dp.Y, dp.Z, rot[0], rot[1], rot[2]}
}

// rotationVector returns axis*angle for a unit quaternion, choosing the shorter rotation.
func rotationVector(q quat.Number) [3]float64 {
	if q.Real < 0 {
		q = spatialmath.Flip(q)
	}
	sinHalf := spatialmath.Norm(q)
	scale := 2.
	if sinHalf > 1e-12 {
		scale = 2 * math.Atan2(sinHalf, q.Real) / sinHalf
	}
	return [3]float64{scale * q.Imag, scale * q.Jmag, scale * q.Kmag}
}

func residualOf(e []float64) float64 {
	return math.Max(math.Sqrt(e[0]*e[0]+e[1]*e[1]+e[2]*e[2]), math.Sqrt(e[3]*e[3]+e[4]*e[4]+e[5]*e[5]))
}

// polish refines joints 1 through 6 of q by damped least squares so the flange reaches target. Candidates that
// start further than polishRadius away are returned untouched. The returned residual is the larger of the
// translation and rotation errors.
func (s *Solver) polish(q []float64, target spatialmath.Pose) ([]float64, float64) {
	current := flangeFK(q)
	e := poseError(current, target)
	residual := residualOf(e)
	if residual > s.polishRadius {
		return q, residual
	}

	q = append([]float64(nil), q...)
	for step := 0; step < s.polishSteps && residual > s.tolerance*1e-4; step++ {
		jac := mat.NewDense(6, polishedJoints, nil)
		for j := 0; j < polishedJoints; j++ {
			perturbed := append([]float64(nil), q...)
			perturbed[j] += s.jacobianStep
			column := poseError(current, flangeFK(perturbed))
			for i := range column {
				jac.Set(i, j, column[i]/s.jacobianStep)
			}
		}

		// (J^T J + lambda^2 I) dq = J^T e
		var normal mat.Dense
		normal.Mul(jac.T(), jac)
		for j := 0; j < polishedJoints; j++ {
			normal.Set(j, j, normal.At(j, j)+s.polishDamping*s.polishDamping)
		}
		var rhs, dq mat.VecDense
		rhs.MulVec(jac.T(), mat.NewVecDense(6, e))
		if err := dq.SolveVec(&normal, &rhs); err != nil {
			break
		}

		next := append([]float64(nil), q...)
		for j := 0; j < polishedJoints; j++ {
			next[j] += dq.AtVec(j)
		}
		nextPose := flangeFK(next)
		nextE := poseError(nextPose, target)
		nextResidual := residualOf(nextE)
		if nextResidual >= residual {
			break
		}
		q, current, e, residual = next, nextPose, nextE, nextResidual
	}
	return q, residual
}
