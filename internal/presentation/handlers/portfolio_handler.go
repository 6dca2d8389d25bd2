package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/middleware"
)

// PortfolioReader serves the caller-scoped read path
type PortfolioReader interface {
	GetPortfolio(ctx context.Context, principal *user.Principal) (*dto.PortfolioResponse, error)
	SetSelection(ctx context.Context, principal *user.Principal, id string, selected bool) (*dto.SelectionResponse, error)
}

// PortfolioHandler handles portfolio HTTP requests
type PortfolioHandler struct {
	portfolio PortfolioReader
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolio PortfolioReader) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// GetPortfolio handles GET /portfolio
// @Summary Get the caller's synced portfolio
// @Description Reads the caller's profile and repositories with the caller-scoped credential
// @Tags Portfolio
// @Produce json
// @Security ClerkAuth
// @Success 200 {object} dto.PortfolioResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Nothing synced yet"
// @Failure 500 {object} dto.ErrorResponse "Read policy misconfigured"
// @Router /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	resp, err := h.portfolio.GetPortfolio(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateSelection handles PUT /repositories/:id/selection
// @Summary Show or hide a repository on the portfolio
// @Tags Portfolio
// @Accept json
// @Produce json
// @Security ClerkAuth
// @Param id path int true "GitHub repository ID"
// @Param request body dto.SelectionRequest true "Selection"
// @Success 200 {object} dto.SelectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /repositories/{id}/selection [put]
func (h *PortfolioHandler) UpdateSelection(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
		return
	}

	resp, err := h.portfolio.SetSelection(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), *req.Selected)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
