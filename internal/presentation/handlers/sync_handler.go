package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/middleware"
)

// Syncer runs a GitHub sync for the caller
type Syncer interface {
	Sync(ctx context.Context, principal *user.Principal) (*dto.SyncResponse, error)
}

// SyncHandler handles sync HTTP requests
type SyncHandler struct {
	syncer Syncer
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncer Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

// SyncGitHub handles POST /sync-github
// @Summary Sync the caller's GitHub profile and repositories
// @Description Fetches the caller's GitHub profile and first page of repositories and stores them.
// @Description The profile field is the unmodified GitHub user resource.
// @Tags Sync
// @Produce json
// @Security ClerkAuth
// @Success 200 {object} dto.SyncResponse
// @Failure 400 {object} dto.ErrorResponse "GitHub account not linked"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "A sync for this user is running"
// @Failure 500 {object} dto.ErrorResponse
// @Router /sync-github [post]
func (h *SyncHandler) SyncGitHub(c *gin.Context) {
	resp, err := h.syncer.Sync(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
