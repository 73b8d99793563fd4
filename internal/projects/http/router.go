package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.PATCH("/:id/recalculate-progress", h.recalculateProgress)
	rg.DELETE("/:id", h.delete)
}
