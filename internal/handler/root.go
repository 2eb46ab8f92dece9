package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootHandler answers the health-check endpoints
type RootHandler struct {
	message string
}

// NewRootHandler creates a root handler that names the active store backend
func NewRootHandler(backend string) *RootHandler {
	return &RootHandler{message: fmt.Sprintf("Parking Backend is running with %s!", backend)}
}

// Root handles GET / requests
//
//	@Summary	Health check
//	@Produce	json
//	@Success	200	{object}	models.HealthResponse
//	@Router		/ [get]
func (h *RootHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.message})
}

// Health handles GET /health requests
func (h *RootHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
