package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. optional runs on
// public reads, admin guards every write.
func (h *Handler) Register(rg *gin.RouterGroup, optional, admin gin.HandlerFunc) {
	rg.GET("", optional, h.list)
	rg.GET("/:project_id", optional, h.get)
	rg.POST("", admin, h.create)
	rg.PUT("/:project_id", admin, h.update)
	rg.POST("/:project_id/status", admin, h.setStatus)
	rg.DELETE("/:project_id", admin, h.delete)
}
