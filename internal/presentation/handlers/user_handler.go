package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/middleware"
)

// CurrentUserService resolves the authenticated caller
type CurrentUserService interface {
	GetMe(ctx context.Context, principal *user.Principal) (*dto.MeResponse, error)
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService CurrentUserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService CurrentUserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetCurrentUser handles GET /auth/me
// @Summary Get current user information
// @Description Returns the authenticated caller and whether a GitHub snapshot has been synced
// @Tags Authentication
// @Produce json
// @Security ClerkAuth
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	resp, err := h.userService.GetMe(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
