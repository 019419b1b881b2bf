package domain

import "errors"

// ErrNotFound is returned when an operation names a day, activity, backup,
// attraction, or saved trip that does not exist.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input breaks a business rule (negative cost,
// end date before start date, removing the last day).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
