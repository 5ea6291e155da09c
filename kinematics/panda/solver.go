package panda

import (
	"math"
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/robofin/referenceframe"
	"go.viam.com/robofin/spatialmath"
	"go.viam.com/robofin/utils"
)

const (
	// defaultTolerance is the largest pose residual, in meters and radians, of an accepted solution.
	defaultTolerance = 1e-6
	// dedupeTolerance merges solutions whose joints all agree this closely.
	dedupeTolerance = 1e-6
	// q6 candidates are shifted by a full turn into this window, which covers the joint's range.
	q6WindowMin = -0.0175
	q6WindowMax = 3.7525
	// shoulderSingularity is the ratio of the shoulder to wrist vector's horizontal reach to its length below
	// which joints 1 and 3 are aligned, q1 is undetermined and defaults to zero.
	shoulderSingularity = 1e-9
)

// Solver is the closed form Panda solver. Joint 7 is pinned and up to eight candidates are produced from the
// elbow, wrist and shoulder branches. Each is refined numerically and kept only if forward kinematics reproduces
// the requested pose. The zero value is not usable, use NewSolver.
type Solver struct {
	tolerance     float64
	polishSteps   int
	polishRadius  float64
	polishDamping float64
	jacobianStep  float64
}

// NewSolver returns a Solver with default tolerances.
func NewSolver() *Solver {
	return &Solver{
		tolerance:     defaultTolerance,
		polishSteps:   20,
		polishRadius:  1e-2,
		polishDamping: 1e-6,
		jacobianStep:  1e-7,
	}
}

// ForwardKinematics returns the flange position and rotation.
func (s *Solver) ForwardKinematics(inputs []referenceframe.Input) (r3.Vector, *spatialmath.RotationMatrix, error) {
	q, err := checkInputs(inputs)
	if err != nil {
		return r3.Vector{}, nil, err
	}
	pose := flangeFK(q)
	return pose.Point(), pose.Orientation().RotationMatrix(), nil
}

// InverseKinematics returns the distinct configurations placing the flange at point and rotation with joint 7 equal
// to pinned. Joint limits are not applied.
func (s *Solver) InverseKinematics(
	point r3.Vector,
	rotation *spatialmath.RotationMatrix,
	pinned referenceframe.Input,
) ([][]referenceframe.Input, error) {
	if rotation == nil {
		return nil, errors.New("rotation is required")
	}
	if math.IsNaN(pinned.Value) || math.IsInf(pinned.Value, 0) {
		return nil, errors.Errorf("pinned value %f is not finite", pinned.Value)
	}
	target := spatialmath.NewPose(point, rotation)

	solutions := [][]referenceframe.Input{}
	for _, candidate := range analyticCandidates(point, rotation, pinned.Value) {
		refined, residual := s.polish(candidate, target)
		if residual > s.tolerance {
			continue
		}
		solution := referenceframe.FloatsToInputs(refined)
		duplicate := slices.ContainsFunc(solutions, func(other []referenceframe.Input) bool {
			return referenceframe.InputsLinfDistance(other, solution) < dedupeTolerance
		})
		if !duplicate {
			solutions = append(solutions, solution)
		}
	}
	return solutions, nil
}

// analyticCandidates computes the raw closed form candidates. Some of them, particularly on the second elbow branch,
// do not actually reach the target and must be verified.
func analyticCandidates(point r3.Vector, rotation *spatialmath.RotationMatrix, q7 float64) [][]float64 {
	const (
		ll24 = a4*a4 + d3*d3
		ll46 = a4*a4 + d5*d5
	)
	var (
		l24      = math.Sqrt(ll24)
		l46      = math.Sqrt(ll46)
		thetaH46 = math.Atan(d5 / a4)
		theta342 = math.Atan(d3 / a4)
		theta46H = math.Atan(a4 / d5)
	)

	z := rotation.Col(2)
	p7 := point.Sub(z.Mul(flange))
	x6 := rotation.MulVec(r3.Vector{X: math.Cos(q7), Y: -math.Sin(q7)}).Normalize()
	p6 := p7.Sub(x6.Mul(a7))
	p2 := r3.Vector{Z: d1}
	v26 := p6.Sub(p2)
	ll26 := v26.Norm2()
	l26 := math.Sqrt(ll26)

	if l24+l46 < l26 || l24+l26 < l46 || l26+l46 < l24 {
		return nil
	}
	cos246 := (ll24 + ll46 - ll26) / (2 * l24 * l46)
	cos462 := (ll26 + ll46 - ll24) / (2 * l26 * l46)
	t246 := math.Acos(utils.Clamp(cos246, -1, 1))
	t462 := math.Acos(utils.Clamp(cos462, -1, 1))

	var candidates [][]float64
	for _, sgn := range []float64{1, -1} {
		theta246 := sgn * t246
		theta462 := sgn * t462
		q4 := theta246 + thetaH46 + theta342 - 2*math.Pi
		if sgn < 0 {
			q4 += 2 * math.Pi
		}

		theta26H := theta46H + theta462
		d26 := -l26 * math.Cos(theta26H)

		z6 := z.Cross(x6).Normalize()
		y6 := z6.Cross(x6).Normalize()
		r6 := spatialmath.NewRotationMatrixFromColumns(x6, y6, z6)
		v662 := r6.Transpose().MulVec(v26.Mul(-1))
		phi6 := math.Atan2(v662.Y, v662.X)
		sin6 := d26 / math.Hypot(v662.X, v662.Y)
		theta6 := math.Asin(utils.Clamp(sin6, -1, 1))

		thetaP26 := 3*math.Pi/2 - theta462 - theta246 - theta342
		thetaP := math.Pi - thetaP26 - theta26H
		lp6 := l26 * math.Sin(thetaP26) / math.Sin(thetaP)

		for _, q6 := range []float64{math.Pi - theta6 - phi6, theta6 - phi6} {
			if q6 <= q6WindowMin {
				q6 += 2 * math.Pi
			} else if q6 >= q6WindowMax {
				q6 -= 2 * math.Pi
			}

			z5 := r6.MulVec(r3.Vector{X: math.Sin(q6), Y: math.Cos(q6)})
			v2p := p6.Sub(z5.Mul(lp6)).Sub(p2)
			l2p := v2p.Norm()

			var shoulders [][2]float64
			if reach := math.Hypot(v2p.X, v2p.Y); reach < shoulderSingularity*l2p {
				shoulders = [][2]float64{{0, 0}}
			} else {
				q1 := math.Atan2(v2p.Y, v2p.X)
				q2 := math.Atan2(reach, v2p.Z)
				q1b := q1 - math.Pi
				if q1 < 0 {
					q1b = q1 + math.Pi
				}
				shoulders = [][2]float64{{q1, q2}, {q1b, -q2}}
			}

			z3 := v2p.Mul(1 / l2p)
			y3 := v26.Cross(v2p).Mul(-1).Normalize()
			x3 := y3.Cross(z3)

			c6, s6 := math.Cos(q6), math.Sin(q6)
			r56 := spatialmath.NewRotationMatrixFromColumns(
				r3.Vector{X: c6, Z: s6},
				r3.Vector{X: -s6, Z: c6},
				r3.Vector{Y: -1},
			)
			r5 := r6.Mul(r56.Transpose())
			vh4 := p2.Add(z3.Mul(d3)).Add(x3.Mul(a4)).Sub(p6).Add(z5.Mul(d5))
			v5h4 := r5.Transpose().MulVec(vh4)
			q5 := -math.Atan2(v5h4.Y, v5h4.X)

			for _, shoulder := range shoulders {
				q1, q2 := shoulder[0], shoulder[1]
				c1, s1 := math.Cos(q1), math.Sin(q1)
				c2, s2 := math.Cos(q2), math.Sin(q2)
				r1 := spatialmath.NewRotationMatrixFromColumns(
					r3.Vector{X: c1, Y: s1},
					r3.Vector{X: -s1, Y: c1},
					r3.Vector{Z: 1},
				)
				r12 := spatialmath.NewRotationMatrixFromColumns(
					r3.Vector{X: c2, Z: -s2},
					r3.Vector{X: -s2, Z: -c2},
					r3.Vector{Y: 1},
				)
				x23 := r1.Mul(r12).Transpose().MulVec(x3)
				q3 := math.Atan2(x23.Z, x23.X)

				candidates = append(candidates, []float64{q1, q2, q3, q4, q5, q6, q7})
			}
		}
	}
	return candidates
}
