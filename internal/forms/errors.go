// Package forms holds what HTML form handling shares across packages.
package forms

// ValidationError carries a message that is safe to show on the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Invalid(msg string) error { return &ValidationError{Message: msg} }
