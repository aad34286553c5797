// Package domainerrors provides coded domain errors shared across ticketd
// modules. Services attach a Code to every rejection so transports and tests
// can branch on the kind of failure without string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the kind of domain failure. Codes are part of the module's
// public contract: every rejected operation maps to exactly one code.
type Code string

const (
	// Ambient codes used across modules.
	CodeInternal     Code = "internal"
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation"
	CodeInvalidInput Code = "invalid_input"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"

	// Ledger codes. Each corresponds to a deterministic rejection: given the
	// same state and inputs the same code is always returned.
	CodePaused              Code = "paused"
	CodeInvalidAmount       Code = "invalid_amount"
	CodeInsufficientPayment Code = "insufficient_payment"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeExpired             Code = "expired"
	CodeNotExpired          Code = "not_expired"
	CodeAlreadyBurned       Code = "already_burned"
	CodeInvalidState        Code = "invalid_state"
)

// DomainError carries a Code alongside a human-readable message and an
// optional wrapped cause.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

// New constructs a DomainError with the given code and message.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Newf constructs a DomainError with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message while preserving the cause for
// errors.Is / errors.As chains. A nil err returns nil so call sites can wrap
// unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is is an alias for HasCode kept for readability at assertion sites.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in err's chain, or CodeInternal when the
// error carries no domain code.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
