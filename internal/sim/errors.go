package sim

import "errors"

var (
	// ErrInvalidInput is matched by every validation failure.
	ErrInvalidInput = errors.New("sim: invalid input")

	// ErrInfeasibleOptimization indicates no payment within the budget
	// clears the loan inside the horizon.
	ErrInfeasibleOptimization = errors.New("sim: no split pays off the loan within the horizon and budget")
)

// InputError names the field that failed validation.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return "sim: invalid " + e.Field + ": " + e.Message
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
