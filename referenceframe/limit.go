package referenceframe

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"go.viam.com/robofin/utils"
)

// DefaultLimitTolerance absorbs floating point round off when checking inputs against limits.
const DefaultLimitTolerance = 1e-5

// Limit represents the limits of motion for a single input.
type Limit struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Range returns Max - Min.
func (l Limit) Range() float64 {
	return l.Max - l.Min
}

// Contains reports whether v is in [Min-tol, Max+tol].
func (l Limit) Contains(v, tol float64) bool {
	return v >= l.Min-tol && v <= l.Max+tol
}

// WithinLimits reports whether every input lies inside its limit widened by tol on both sides.
// A length mismatch is never within limits.
func WithinLimits(inputs []Input, limits []Limit, tol float64) bool {
	if len(inputs) != len(limits) {
		return false
	}
	for i, in := range inputs {
		if !limits[i].Contains(in.Value, tol) {
			return false
		}
	}
	return true
}

// ClipToLimits returns a copy of inputs with each value clamped into its limit.
func ClipToLimits(inputs []Input, limits []Limit) ([]Input, error) {
	if len(inputs) != len(limits) {
		return nil, NewIncorrectDoFError(len(inputs), len(limits))
	}
	clipped := make([]Input, len(inputs))
	for i, in := range inputs {
		clipped[i] = Input{utils.Clamp(in.Value, limits[i].Min, limits[i].Max)}
	}
	return clipped, nil
}

// RandomFrameInputs will produce a list of valid, in-bounds inputs drawn uniformly over each limit.
// A nil rSeed draws from the process wide source, which is safe for concurrent use.
func RandomFrameInputs(limits []Limit, rSeed *rand.Rand) []Input {
	src := utils.RandSource(rSeed)
	pos := make([]Input, 0, len(limits))
	for _, lim := range limits {
		l, u := lim.Min, lim.Max

		// Default to [-999,999] as range if limits are infinite
		if math.IsInf(l, -1) {
			l = -999
		}
		if math.IsInf(u, 1) {
			u = 999
		}
		if l == u {
			pos = append(pos, Input{l})
			continue
		}

		dist := distuv.Uniform{Min: l, Max: u, Src: src}
		pos = append(pos, Input{dist.Rand()})
	}
	return pos
}
