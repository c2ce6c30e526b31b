// Package errs defines the domain error taxonomy shared by services
// and mapped to HTTP statuses at the handler boundary.
package errs

import "fmt"

// NotFoundError signals that a requested entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Entity, e.ID)
}

func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError signals malformed or out-of-range request data.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UnauthorizedError signals failed authentication (bad credentials or token).
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

func NewUnauthorized(format string, args ...any) error {
	return &UnauthorizedError{Message: fmt.Sprintf(format, args...)}
}

// AccessDeniedError signals that an authenticated caller lacks permission.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

func NewAccessDenied(format string, args ...any) error {
	return &AccessDeniedError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError signals a booking date-range conflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStatusError signals an operation applied in an illegal lifecycle state.
type InvalidStatusError struct {
	Message string
}

func (e *InvalidStatusError) Error() string { return e.Message }

func NewInvalidStatus(format string, args ...any) error {
	return &InvalidStatusError{Message: fmt.Sprintf(format, args...)}
}

// BookingDataError signals incomplete or inconsistent booking data
// discovered while computing a payment amount.
type BookingDataError struct {
	Message string
}

func (e *BookingDataError) Error() string { return e.Message }

func NewBookingData(format string, args ...any) error {
	return &BookingDataError{Message: fmt.Sprintf(format, args...)}
}

// SessionError wraps a failure talking to the external checkout provider.
type SessionError struct {
	Message string
	Err     error
}

func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SessionError) Unwrap() error { return e.Err }

func NewSession(message string, err error) error {
	return &SessionError{Message: message, Err: err}
}

// RegistrationError signals a failed user registration (e.g. duplicate email).
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string { return e.Message }

func NewRegistration(format string, args ...any) error {
	return &RegistrationError{Message: fmt.Sprintf(format, args...)}
}
