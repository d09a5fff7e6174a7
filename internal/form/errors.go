package form

import "errors"

// ErrBusy is returned when a submit is attempted while one is in flight.
var ErrBusy = errors.New("a submission is already in progress")

// FieldError is a client-side validation failure for one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func fieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
