package optim

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidArgumentError reports a hyperparameter outside its allowed range.
type InvalidArgumentError struct {
	Name    string
	Value   float64
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid value %v for %s: %s", e.Value, e.Name, e.Message)
}

func errOutsideRange(name string, value float64, allowed string) error {
	return errors.WithStack(&InvalidArgumentError{
		Name:    name,
		Value:   value,
		Message: fmt.Sprintf("outside allowed range %s", allowed),
	})
}

func validatePositive(name string, value float64) error {
	if value <= 0 {
		return errOutsideRange(name, value, "(0, Inf)")
	}
	return nil
}

func validateDecay(name string, value float64) error {
	if value < 0 || value >= 1 {
		return errOutsideRange(name, value, "[0, 1)")
	}
	return nil
}

func validateNonNegative(name string, value float64) error {
	if value < 0 {
		return errOutsideRange(name, value, "[0, Inf)")
	}
	return nil
}
