package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrela2025/Agro-Conecta/internal/model"
	"github.com/Andrela2025/Agro-Conecta/internal/service"
)

// AskHandler handles free-text questions
type AskHandler struct {
	router *service.Router
}

// NewAskHandler creates a new ask handler
func NewAskHandler(router *service.Router) *AskHandler {
	return &AskHandler{router: router}
}

// Ask handles POST /api/v1/ask
func (h *AskHandler) Ask(c *gin.Context) {
	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.router.Ask(&req))
}
