package sync

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeMissingProviderToken  = "MISSING_PROVIDER_TOKEN"
	CodeGitHubFetchFailed     = "GITHUB_FETCH_FAILED"
	CodeProfileWriteFailed    = "PROFILE_WRITE_FAILED"
	CodeRepositoryWriteFailed = "REPOSITORY_WRITE_FAILED"
	CodeStoreUnavailable      = "STORE_UNAVAILABLE"
	CodeConfiguration         = "CONFIGURATION_ERROR"
	CodeSyncInProgress        = "SYNC_IN_PROGRESS"
	CodeInternal              = "INTERNAL"
)

// DomainError is the typed failure of a sync. Step names the stage that failed.
type DomainError struct {
	Code    string
	Step    string
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

// IsRejection reports whether the sync was refused because of the caller's
// request or state rather than failing partway through.
func (e *DomainError) IsRejection() bool {
	switch e.Code {
	case CodeUnauthorized, CodeUserNotFound, CodeMissingProviderToken, CodeSyncInProgress:
		return true
	}
	return false
}

// AsDomainError extracts a *DomainError from err's chain
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func ErrUnauthorized() *DomainError {
	return &DomainError{Code: CodeUnauthorized, Step: "authenticate", Message: "no authenticated caller"}
}

func ErrUserNotFound(userID string, err error) *DomainError {
	return &DomainError{
		Code:    CodeUserNotFound,
		Step:    "resolve_user",
		Message: fmt.Sprintf("user %s not found in identity provider", userID),
		Err:     err,
	}
}

func ErrMissingProviderToken(userID string, err error) *DomainError {
	return &DomainError{
		Code:    CodeMissingProviderToken,
		Step:    "provider_token",
		Message: fmt.Sprintf("user %s has no linked GitHub grant", userID),
		Err:     err,
	}
}

func ErrGitHubFetchFailed(err error) *DomainError {
	return &DomainError{Code: CodeGitHubFetchFailed, Step: "github_fetch", Message: "GitHub fetch failed", Err: err}
}

func ErrProfileWriteFailed(err error) *DomainError {
	return &DomainError{Code: CodeProfileWriteFailed, Step: "profile_write", Message: "profile upsert failed", Err: err}
}

func ErrRepositoryWriteFailed(err error) *DomainError {
	return &DomainError{Code: CodeRepositoryWriteFailed, Step: "repository_write", Message: "repository upsert failed", Err: err}
}

func ErrStoreUnavailable(err error) *DomainError {
	return &DomainError{Code: CodeStoreUnavailable, Step: "store", Message: "store unavailable", Err: err}
}

func ErrConfiguration(step string, err error) *DomainError {
	return &DomainError{Code: CodeConfiguration, Step: step, Message: "server configuration error", Err: err}
}

func ErrSyncInProgress(userID string) *DomainError {
	return &DomainError{
		Code:    CodeSyncInProgress,
		Step:    "acquire",
		Message: fmt.Sprintf("a sync for user %s is already running", userID),
	}
}

func ErrInternal(step string, err error) *DomainError {
	return &DomainError{Code: CodeInternal, Step: step, Message: "unexpected failure", Err: err}
}
