package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

// Handlers bundles the API handlers registered under /api/v1
type Handlers struct {
	Ask      *AskHandler
	Purchase *PurchaseHandler
	Options  *OptionsHandler
}

// RegisterRoutes mounts the health, version and API routes
func RegisterRoutes(router gin.IRouter, h Handlers, build BuildInfo) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "agro-conecta",
			"version":    build.Version,
			"build_time": build.BuildTime,
			"git_commit": build.GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, build)
	})

	apiV1 := router.Group("/api/v1")
	{
		// Question answering
		apiV1.POST("/ask", h.Ask.Ask)

		// Purchases
		apiV1.POST("/purchase", h.Purchase.Purchase)
		apiV1.GET("/purchases", h.Purchase.List)
		apiV1.GET("/options", h.Options.Options)
	}
}
