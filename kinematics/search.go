package kinematics

import (
	"context"
	"math/rand/v2"

	"github.com/pkg/errors"

	"go.viam.com/robofin/referenceframe"
	"go.viam.com/robofin/spatialmath"
)

// DefaultMaxRetries is the retry budget callers conventionally give CollisionFreeIK.
const DefaultMaxRetries = 1000

// CollisionChecker reports whether the arm at inputs, with its fingers at prismatic, comes within buffer of any
// obstacle.
type CollisionChecker interface {
	Collides(inputs []referenceframe.Input, prismatic float64, obstacles []spatialmath.Geometry, buffer float64) (bool, error)
}

// CollisionCheckerFunc adapts a function to a CollisionChecker.
type CollisionCheckerFunc func(inputs []referenceframe.Input, prismatic float64, obstacles []spatialmath.Geometry, buffer float64) (bool, error)

// Collides calls f.
func (f CollisionCheckerFunc) Collides(
	inputs []referenceframe.Input,
	prismatic float64,
	obstacles []spatialmath.Geometry,
	buffer float64,
) (bool, error) {
	return f(inputs, prismatic, obstacles, buffer)
}

// CollisionFreeRequest holds everything CollisionFreeIK needs beyond the target pose.
type CollisionFreeRequest struct {
	// Prismatic is the finger position handed to the checker.
	Prismatic float64
	Checker   CollisionChecker
	Obstacles []spatialmath.Geometry
	Buffer    float64
	// Frame defaults to the robot's default frame when empty.
	Frame string
	// MaxRetries bounds the search to MaxRetries+1 draws. Negative values are rejected.
	MaxRetries int
	// BadState vetoes an otherwise acceptable candidate when it returns true. Nil never vetoes.
	BadState func([]referenceframe.Input) bool
}

// SearchResult is the outcome of CollisionFreeIK. Found is false when the budget ran out, which is not an error.
type SearchResult struct {
	Configuration []referenceframe.Input
	Found         bool
	// Attempts is the number of RandomIK draws made.
	Attempts int
	// Candidates is the number of limit respecting solutions examined.
	Candidates int
}

// RandomIK solves for pose with the last joint pinned to a value drawn from a random configuration.
// Solver failures are returned as *IKFailureError carrying the pose.
func (r *Robot) RandomIK(pose spatialmath.Pose, frame string, rSeed *rand.Rand) ([][]referenceframe.Input, error) {
	seed, err := r.RandomConfiguration(rSeed)
	if err != nil {
		return nil, err
	}
	solutions, err := r.InverseKinematics(pose, seed[len(seed)-1], frame)
	if err != nil {
		return nil, NewIKFailureError(pose, frame, err)
	}
	return solutions, nil
}

// CollisionFreeIK repeatedly draws RandomIK solutions and returns the first one that neither collides nor is
// vetoed by BadState. The context is checked before every draw.
func (r *Robot) CollisionFreeIK(
	ctx context.Context,
	pose spatialmath.Pose,
	req CollisionFreeRequest,
	rSeed *rand.Rand,
) (SearchResult, error) {
	if req.MaxRetries < 0 {
		return SearchResult{}, NewInvalidArgumentError("max retries must be non-negative, got %d", req.MaxRetries)
	}
	if req.Checker == nil {
		return SearchResult{}, NewInvalidArgumentError("a collision checker is required")
	}
	frame := req.Frame
	if frame == "" {
		frame = r.DefaultFrame()
	}

	var result SearchResult
	for result.Attempts <= req.MaxRetries {
		if err := ctx.Err(); err != nil {
			return SearchResult{Attempts: result.Attempts, Candidates: result.Candidates},
				errors.Wrapf(err, "collision free search stopped after %d attempts", result.Attempts)
		}
		result.Attempts++

		solutions, err := r.RandomIK(pose, frame, rSeed)
		if err != nil {
			return result, err
		}
		for _, solution := range solutions {
			result.Candidates++
			collides, err := req.Checker.Collides(solution, req.Prismatic, req.Obstacles, req.Buffer)
			if err != nil {
				return result, errors.Wrap(err, "collision check")
			}
			if collides {
				continue
			}
			if req.BadState != nil && req.BadState(solution) {
				continue
			}
			r.logger.Debugw("collision free solution found", "attempts", result.Attempts, "candidates", result.Candidates)
			result.Configuration = solution
			result.Found = true
			return result, nil
		}
		r.logger.Debugw("no acceptable candidate", "attempt", result.Attempts, "solutions", len(solutions))
	}
	r.logger.Debugw("collision free search exhausted", "attempts", result.Attempts, "candidates", result.Candidates)
	return result, nil
}
