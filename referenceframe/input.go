// Package referenceframe defines joint inputs and the limits that bound them.
package referenceframe

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Input wraps the input to a mutable frame, e.g. a joint angle or a finger position.
//   - revolute inputs should be in radians.
//   - prismatic inputs should be in meters.
type Input struct {
	Value float64
}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(floats []float64) []Input {
	inputs := make([]Input, len(floats))
	for i, f := range floats {
		inputs[i] = Input{f}
	}
	return inputs
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	floats := make([]float64, len(inputs))
	for i, f := range inputs {
		floats[i] = f.Value
	}
	return floats
}

// InputsL2Distance returns the two-norm (the sqrt of the sum of the squares) between two Input sets.
func InputsL2Distance(from, to []Input) float64 {
	if len(from) != len(to) {
		return math.Inf(1)
	}
	diff := make([]float64, 0, len(from))
	for i, f := range from {
		diff = append(diff, f.Value-to[i].Value)
	}
	return floats.Norm(diff, 2)
}

// InputsLinfDistance returns the largest absolute elementwise difference between two Input sets.
func InputsLinfDistance(from, to []Input) float64 {
	if len(from) != len(to) {
		return math.Inf(1)
	}
	return floats.Distance(InputsToFloats(from), InputsToFloats(to), math.Inf(1))
}
