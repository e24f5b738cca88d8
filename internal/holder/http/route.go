package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/holders")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Allocate)
		group.DELETE("/:id", h.Release)
		group.POST("/:id/payments", h.RecordPayment)
	}
}
