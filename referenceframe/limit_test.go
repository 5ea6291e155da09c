package referenceframe

import (
	"math"
	"math/rand/v2"
	"testing"

	"go.viam.com/test"
)

var testLimits = []Limit{{-1, 1}, {0, 2}, {-math.Pi, -0.5}}

func TestWithinLimits(t *testing.T) {
	for _, tc := range []struct {
		name   string
		inputs []float64
		within bool
	}{
		{"center", []float64{0, 1, -1}, true},
		{"lower bounds", []float64{-1, 0, -math.Pi}, true},
		{"upper bounds", []float64{1, 2, -0.5}, true},
		{"inside tolerance", []float64{1 + 0.9e-5, 0 - 0.9e-5, -0.5}, true},
		{"outside tolerance above", []float64{1 + 2e-5, 1, -1}, false},
		{"outside tolerance below", []float64{0, -2e-5, -1}, false},
		{"too few", []float64{0, 1}, false},
		{"too many", []float64{0, 1, -1, 0}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, WithinLimits(FloatsToInputs(tc.inputs), testLimits, DefaultLimitTolerance), test.ShouldEqual, tc.within)
		})
	}
	test.That(t, WithinLimits(FloatsToInputs([]float64{1 + 0.9e-5, 1, -1}), testLimits, 0), test.ShouldBeFalse)
}

func TestClipToLimits(t *testing.T) {
	clipped, err := ClipToLimits(FloatsToInputs([]float64{5, -5, -1}), testLimits)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, InputsToFloats(clipped), test.ShouldResemble, []float64{1, 0, -1})

	_, err = ClipToLimits(FloatsToInputs([]float64{0}), testLimits)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRandomFrameInputs(t *testing.T) {
	rSeed := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 1000; i++ {
		inputs := RandomFrameInputs(testLimits, rSeed)
		test.That(t, len(inputs), test.ShouldEqual, len(testLimits))
		test.That(t, WithinLimits(inputs, testLimits, 0), test.ShouldBeTrue)
	}

	// same seed, same stream
	a := RandomFrameInputs(testLimits, rand.New(rand.NewPCG(7, 7)))
	b := RandomFrameInputs(testLimits, rand.New(rand.NewPCG(7, 7)))
	test.That(t, a, test.ShouldResemble, b)

	// nil uses the global source
	test.That(t, WithinLimits(RandomFrameInputs(testLimits, nil), testLimits, 0), test.ShouldBeTrue)

	fixed := RandomFrameInputs([]Limit{{0.5, 0.5}, {math.Inf(-1), math.Inf(1)}}, rSeed)
	test.That(t, fixed[0].Value, test.ShouldEqual, 0.5)
	test.That(t, math.Abs(fixed[1].Value), test.ShouldBeLessThanOrEqualTo, 999.)
}

func TestLimit(t *testing.T) {
	lim := Limit{-1, 3}
	test.That(t, lim.Range(), test.ShouldEqual, 4.)
	test.That(t, lim.Contains(3, 0), test.ShouldBeTrue)
	test.That(t, lim.Contains(3.1, 0), test.ShouldBeFalse)
	test.That(t, lim.Contains(3.1, 0.2), test.ShouldBeTrue)
}
