// Package common defines shared constants, sentinel errors and typed errors
// used across client and server layers of PantryKeeper. Callers should use
// errors.Is / errors.As to match these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorValidation is matched by every *ValidationError.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// ValidationError reports which fields of a candidate item are missing or
// hold a value outside their allowed set. It never reaches the store.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid fields: %s", ErrorValidation, strings.Join(e.Fields, ", "))
}

// Is lets errors.Is(err, ErrorValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}

// StoreError wraps a failure returned by the item store adapter. Op names
// the adapter call ("create", "list", "update", "delete").
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err, keeping an existing StoreError as is.
func NewStoreError(op string, err error) error {
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
