package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/domain/generation"
	"gitfolio-core/internal/domain/portfolio"
	domainsync "gitfolio-core/internal/domain/sync"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/middleware"
)

const (
	msgUnauthorized     = "Unauthorized"
	msgUserNotFound     = "User not found"
	msgMissingToken     = "GitHub access token not found"
	msgSyncInProgress   = "Sync already in progress"
	msgProfileWrite     = "Failed to sync profile"
	msgRepositoryWrite  = "Failed to sync repositories"
	msgGitHubFetch      = "Failed to fetch GitHub data"
	msgConfiguration    = "Server configuration error"
	msgInternal         = "Internal server error"
	msgProfileNotSynced = "Profile not synced"
	msgRepoNotFound     = "Repository not found"
	msgInvalidBody      = "Invalid request body"
	msgGenNotFound      = "Generation not found"
	msgGenInProgress    = "Generation already in progress"
	msgGenFinished      = "Generation already finished"
)

// errorStatus maps a typed domain error to its HTTP status and public message.
// Upstream bodies and credentials never reach the message.
func errorStatus(err error) (int, string) {
	var se *domainsync.DomainError
	if errors.As(err, &se) {
		switch se.Code {
		case domainsync.CodeUnauthorized:
			return http.StatusUnauthorized, msgUnauthorized
		case domainsync.CodeUserNotFound:
			return http.StatusNotFound, msgUserNotFound
		case domainsync.CodeMissingProviderToken:
			return http.StatusBadRequest, msgMissingToken
		case domainsync.CodeSyncInProgress:
			return http.StatusConflict, msgSyncInProgress
		case domainsync.CodeGitHubFetchFailed:
			return http.StatusInternalServerError, msgGitHubFetch
		case domainsync.CodeProfileWriteFailed:
			return http.StatusInternalServerError, msgProfileWrite
		case domainsync.CodeRepositoryWriteFailed:
			return http.StatusInternalServerError, msgRepositoryWrite
		case domainsync.CodeConfiguration:
			return http.StatusInternalServerError, msgConfiguration
		default:
			return http.StatusInternalServerError, msgInternal
		}
	}

	var pe *portfolio.DomainError
	if errors.As(err, &pe) {
		switch pe.Code {
		case portfolio.CodeProfileNotSynced:
			return http.StatusNotFound, msgProfileNotSynced
		case portfolio.CodeRepositoryNotFound:
			return http.StatusNotFound, msgRepoNotFound
		case portfolio.CodeReadPolicyMisconfigured:
			return http.StatusInternalServerError, msgConfiguration
		default:
			return http.StatusInternalServerError, msgInternal
		}
	}

	var ge *generation.DomainError
	if errors.As(err, &ge) {
		switch ge.Code {
		case generation.CodeGenerationNotFound:
			return http.StatusNotFound, msgGenNotFound
		case generation.CodeGenerationInProgress:
			return http.StatusConflict, msgGenInProgress
		case generation.CodeInvalidStatusTransition:
			return http.StatusConflict, msgGenFinished
		case generation.CodeInvalidGeneration:
			return http.StatusBadRequest, msgInvalidBody
		}
	}

	var ue *user.DomainError
	if errors.As(err, &ue) {
		switch ue.Code {
		case user.CodeUserNotFound:
			return http.StatusNotFound, msgUserNotFound
		case user.CodeIdentityConfiguration:
			return http.StatusInternalServerError, msgConfiguration
		}
	}

	return http.StatusInternalServerError, msgInternal
}

// respondError writes the JSON error body for err
func respondError(c *gin.Context, err error) {
	status, msg := errorStatus(err)

	// sync failures are logged with their step by the sync service
	if _, isSync := domainsync.AsDomainError(err); !isSync && status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c, nil).Error("Request failed", zap.Error(err))
	}

	c.JSON(status, dto.ErrorResponse{Error: msg})
}
