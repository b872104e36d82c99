package orders

import "errors"

var (
	// ErrOrderNotFound is returned by mutation paths for unknown ids
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderComplete is returned when advancing a terminal order
	ErrOrderComplete = errors.New("order already complete")
)

// ValidationError rejects a request before any state is mutated
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
