package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitfolio-core/internal/application/dto"
	"gitfolio-core/internal/domain/user"
	"gitfolio-core/internal/middleware"
)

// GenerationTracker records portfolio builds for the caller
type GenerationTracker interface {
	Start(ctx context.Context, principal *user.Principal, req *dto.StartGenerationRequest) (*dto.GenerationResponse, error)
	List(ctx context.Context, principal *user.Principal) (*dto.GenerationListResponse, error)
	Complete(ctx context.Context, principal *user.Principal, id string, req *dto.CompleteGenerationRequest) (*dto.GenerationResponse, error)
}

// GenerationHandler handles portfolio generation HTTP requests
type GenerationHandler struct {
	generations GenerationTracker
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(generations GenerationTracker) *GenerationHandler {
	return &GenerationHandler{generations: generations}
}

// StartGeneration handles POST /portfolio/generations
// @Summary Start a portfolio generation
// @Description Records a generation for the caller's synced profile. Only one may be in progress.
// @Tags Generation
// @Accept json
// @Produce json
// @Security ClerkAuth
// @Param request body dto.StartGenerationRequest false "Template and prompt"
// @Success 201 {object} dto.GenerationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Profile not synced"
// @Failure 409 {object} dto.ErrorResponse "Generation already in progress"
// @Router /portfolio/generations [post]
func (h *GenerationHandler) StartGeneration(c *gin.Context) {
	var req dto.StartGenerationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
			return
		}
	}

	resp, err := h.generations.Start(c.Request.Context(), middleware.PrincipalFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListGenerations handles GET /portfolio/generations
// @Summary List the caller's portfolio generations
// @Tags Generation
// @Produce json
// @Security ClerkAuth
// @Success 200 {object} dto.GenerationListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /portfolio/generations [get]
func (h *GenerationHandler) ListGenerations(c *gin.Context) {
	resp, err := h.generations.List(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CompleteGeneration handles PUT /portfolio/generations/:id/status
// @Summary Record the outcome of a portfolio generation
// @Tags Generation
// @Accept json
// @Produce json
// @Security ClerkAuth
// @Param id path string true "Generation ID"
// @Param request body dto.CompleteGenerationRequest true "Outcome"
// @Success 200 {object} dto.GenerationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Generation already finished"
// @Router /portfolio/generations/{id}/status [put]
func (h *GenerationHandler) CompleteGeneration(c *gin.Context) {
	var req dto.CompleteGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidBody})
		return
	}

	resp, err := h.generations.Complete(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
