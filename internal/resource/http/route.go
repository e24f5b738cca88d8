package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers resource-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/resources")
	{
		group.GET("", h.List)              // List resources
		group.GET("/:id", h.Get)           // Get resource details
		group.POST("", h.Create)           // Add resource
		group.PATCH("/:id", h.Update)      // Update kind / unit price
		group.PUT("/:id/stock", h.SetStock) // Overwrite pooled stock
		group.DELETE("/:id", h.Delete)     // Delete resource
		group.GET("/:id/quote", h.Quote)   // Price an allocation
	}
}
