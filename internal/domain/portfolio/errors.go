package portfolio

import "fmt"

// Error codes
const (
	CodeProfileNotSynced        = "PROFILE_NOT_SYNCED"
	CodeReadPolicyMisconfigured = "READ_POLICY_MISCONFIGURED"
	CodeRepositoryNotFound      = "REPOSITORY_NOT_FOUND"
	CodeStoreUnavailable        = "STORE_UNAVAILABLE"
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

func ErrProfileNotSynced(userID string) *DomainError {
	return &DomainError{
		Code:    CodeProfileNotSynced,
		Message: fmt.Sprintf("no profile has been synced for user %s", userID),
	}
}

// ErrReadPolicyMisconfigured means the elevated path stores rows that the
// caller-scoped path cannot see.
func ErrReadPolicyMisconfigured(userID string) *DomainError {
	return &DomainError{
		Code:    CodeReadPolicyMisconfigured,
		Message: fmt.Sprintf("profile for user %s exists but is not visible to the caller credential", userID),
	}
}

func ErrRepositoryNotFound(id string) *DomainError {
	return &DomainError{
		Code:    CodeRepositoryNotFound,
		Message: fmt.Sprintf("repository %s not found", id),
	}
}

func ErrStoreUnavailable(err error) *DomainError {
	return &DomainError{
		Code:    CodeStoreUnavailable,
		Message: "store read failed",
		Err:     err,
	}
}
