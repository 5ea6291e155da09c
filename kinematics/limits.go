package kinematics

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"go.viam.com/robofin/referenceframe"
	"go.viam.com/robofin/spatialmath"
	"go.viam.com/robofin/utils"
)

// Sampling methods accepted by RandomNeutral.
const (
	SampleNormal  = "normal"
	SampleUniform = "uniform"
)

const (
	// neutralNormalSigma is the standard deviation of the noise added by normal neutral sampling.
	neutralNormalSigma = 0.25
	// neutralUniformWidth bounds the noise added by uniform neutral sampling to [0, width).
	neutralUniformWidth = 0.25
)

// WithinLimits reports whether every joint is inside its limit, allowing DefaultLimitTolerance on both sides.
func (r *Robot) WithinLimits(inputs []referenceframe.Input) bool {
	return referenceframe.WithinLimits(inputs, r.profile.limits, referenceframe.DefaultLimitTolerance)
}

// RandomNeutral perturbs the neutral configuration. "normal" adds gaussian noise and clips to the limits.
// "uniform" adds noise in [0, 0.25) without clipping.
func (r *Robot) RandomNeutral(method string, rSeed *rand.Rand) ([]referenceframe.Input, error) {
	if err := r.require(CapabilityRandomNeutral); err != nil {
		return nil, err
	}
	src := utils.RandSource(rSeed)
	var dist interface{ Rand() float64 }
	switch method {
	case SampleNormal:
		dist = distuv.Normal{Mu: 0, Sigma: neutralNormalSigma, Src: src}
	case SampleUniform:
		dist = distuv.Uniform{Min: 0, Max: neutralUniformWidth, Src: src}
	default:
		return nil, NewInvalidArgumentError("unknown sampling method %q, expected %q or %q", method, SampleNormal, SampleUniform)
	}

	sample := r.profile.Neutral()
	for i := range sample {
		sample[i].Value += dist.Rand()
	}
	if method == SampleUniform {
		return sample, nil
	}
	return referenceframe.ClipToLimits(sample, r.profile.limits)
}

// RandomConfiguration draws every joint uniformly over its limit.
func (r *Robot) RandomConfiguration(rSeed *rand.Rand) ([]referenceframe.Input, error) {
	if err := r.require(CapabilityRandomConfiguration); err != nil {
		return nil, err
	}
	return referenceframe.RandomFrameInputs(r.profile.limits, rSeed), nil
}

// RandomPose returns the pose of frame at a random configuration.
func (r *Robot) RandomPose(frame string, rSeed *rand.Rand) (spatialmath.Pose, error) {
	inputs, err := r.RandomConfiguration(rSeed)
	if err != nil {
		return nil, err
	}
	return r.ForwardKinematics(inputs, frame)
}
