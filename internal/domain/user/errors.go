package user

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeNoLinkedGrant         = "NO_LINKED_GRANT"
	CodeIdentityConfiguration = "IDENTITY_CONFIGURATION"
	CodeIdentityUnavailable   = "IDENTITY_UNAVAILABLE"
	CodeInvalidUserData       = "INVALID_USER_DATA"
)

// Domain errors

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Predefined domain errors

func ErrUserNotFound(id string) *DomainError {
	return &DomainError{
		Code:    CodeUserNotFound,
		Message: fmt.Sprintf("user with ID %s not found", id),
	}
}

func ErrNoLinkedGrant(id, provider string) *DomainError {
	return &DomainError{
		Code:    CodeNoLinkedGrant,
		Message: fmt.Sprintf("user %s has no linked %s grant", id, provider),
	}
}

func ErrIdentityConfiguration(err error) *DomainError {
	return &DomainError{
		Code:    CodeIdentityConfiguration,
		Message: "identity provider rejected server credentials",
		Err:     err,
	}
}

func ErrIdentityUnavailable(err error) *DomainError {
	return &DomainError{
		Code:    CodeIdentityUnavailable,
		Message: "identity provider request failed",
		Err:     err,
	}
}

func ErrInvalidUserData(field string, err error) *DomainError {
	return &DomainError{
		Code:    CodeInvalidUserData,
		Message: fmt.Sprintf("invalid %s", field),
		Err:     err,
	}
}

// HasCode reports whether err is a *DomainError with the given code
func HasCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
