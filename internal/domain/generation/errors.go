package generation

import "fmt"

// Error codes
const (
	CodeGenerationNotFound      = "GENERATION_NOT_FOUND"
	CodeGenerationInProgress    = "GENERATION_IN_PROGRESS"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeInvalidGeneration       = "INVALID_GENERATION"
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

func ErrGenerationNotFound(id string) *DomainError {
	return &DomainError{
		Code:    CodeGenerationNotFound,
		Message: fmt.Sprintf("generation %s not found", id),
	}
}

func ErrGenerationInProgress(userID string) *DomainError {
	return &DomainError{
		Code:    CodeGenerationInProgress,
		Message: fmt.Sprintf("user %s already has a generation in progress", userID),
	}
}

func ErrInvalidStatusTransition(from, to Status) *DomainError {
	return &DomainError{
		Code:    CodeInvalidStatusTransition,
		Message: fmt.Sprintf("cannot move generation from %s to %s", from, to),
	}
}

func ErrInvalidGeneration(field string, err error) *DomainError {
	return &DomainError{
		Code:    CodeInvalidGeneration,
		Message: fmt.Sprintf("invalid %s", field),
		Err:     err,
	}
}
