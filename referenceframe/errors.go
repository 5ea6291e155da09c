package referenceframe

import "github.com/pkg/errors"

// NewIncorrectDoFError returns an error indicating that the number of inputs does not match the degrees of freedom.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of dof %d does not match number of inputs %d", expected, actual)
}

// NewLimitsInvertedError is returned when a limit's Min exceeds its Max.
func NewLimitsInvertedError(index int, lim Limit) error {
	return errors.Errorf("joint %d has min %f greater than max %f", index, lim.Min, lim.Max)
}
