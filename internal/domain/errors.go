package domain

// ValidationError is an expected business-rule failure. Its Reason is safe to show to clients.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Reason
}
