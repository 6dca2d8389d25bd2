package profile

import "fmt"

// Error codes
const (
	CodeProfileNotFound    = "PROFILE_NOT_FOUND"
	CodeInvalidProfileData = "INVALID_PROFILE_DATA"
)

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

func ErrProfileNotFound(userID string) *DomainError {
	return &DomainError{
		Code:    CodeProfileNotFound,
		Message: fmt.Sprintf("profile for user %s not found", userID),
	}
}

func ErrInvalidProfileData(field string, err error) *DomainError {
	return &DomainError{
		Code:    CodeInvalidProfileData,
		Message: fmt.Sprintf("invalid %s", field),
		Err:     err,
	}
}
