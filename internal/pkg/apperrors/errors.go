// Package apperrors defines the error kinds the ordering workflow
// distinguishes between. Handlers map kinds to HTTP responses; services
// wrap underlying causes so callers can still unwrap them.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for presentation purposes
type Kind string

const (
	KindValidation  Kind = "validation"
	KindFetch       Kind = "fetch"
	KindGateway     Kind = "gateway"
	KindPersistence Kind = "persistence"
)

// Error is a classified application error
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a recoverable input error (empty cart, missing table)
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Fetch wraps a read failure that the caller degrades on instead of propagating
func Fetch(message string, err error) *Error {
	return &Error{Kind: KindFetch, Message: message, Err: err}
}

// Gateway wraps a payment gateway failure; surfaced to the user, never retried
func Gateway(message string, err error) *Error {
	return &Error{Kind: KindGateway, Message: message, Err: err}
}

// Persistence wraps a storage write failure
func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// IsKind reports whether err is an application error of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
