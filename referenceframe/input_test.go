package referenceframe

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestInputConversions(t *testing.T) {
	floats := []float64{0.1, -0.2, 3}
	test.That(t, InputsToFloats(FloatsToInputs(floats)), test.ShouldResemble, floats)
}

func TestInputDistances(t *testing.T) {
	from := FloatsToInputs([]float64{0, 0, 0})
	to := FloatsToInputs([]float64{3, 4, 0})
	test.That(t, InputsL2Distance(from, to), test.ShouldAlmostEqual, 5.)
	test.That(t, InputsLinfDistance(from, to), test.ShouldAlmostEqual, 4.)
	test.That(t, math.IsInf(InputsL2Distance(from, to[:2]), 1), test.ShouldBeTrue)
	test.That(t, math.IsInf(InputsLinfDistance(from, to[:2]), 1), test.ShouldBeTrue)
}
