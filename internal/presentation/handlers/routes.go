package handlers

import (
	"github.com/gin-gonic/gin"
)

// API groups the handlers served under /api/v1
type API struct {
	Sync       *SyncHandler
	Portfolio  *PortfolioHandler
	User       *UserHandler
	Generation *GenerationHandler
}

// Register mounts every authenticated API route on group
func (a *API) Register(group *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	authed := group.Group("")
	authed.Use(requireAuth)
	{
		authed.POST("/sync-github", a.Sync.SyncGitHub)
		authed.GET("/portfolio", a.Portfolio.GetPortfolio)
		authed.PUT("/repositories/:id/selection", a.Portfolio.UpdateSelection)
		authed.GET("/auth/me", a.User.GetCurrentUser)

		authed.POST("/portfolio/generations", a.Generation.StartGeneration)
		authed.GET("/portfolio/generations", a.Generation.ListGenerations)
		authed.PUT("/portfolio/generations/:id/status", a.Generation.CompleteGeneration)
	}
}
