package utils

import "math/rand/v2"

// RandSource adapts an optional *rand.Rand to a rand.Source. A nil rSeed yields a nil Source so that
// gonum distributions fall back to the process wide generator instead of dereferencing a nil pointer.
func RandSource(rSeed *rand.Rand) rand.Source {
	if rSeed == nil {
		return nil
	}
	return rSeed
}
