package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/mindmap-be/types"
)

type HealthHandler struct {
	aiSource string
	storage  string
}

func NewHealthHandler(aiSource, storage string) *HealthHandler {
	return &HealthHandler{
		aiSource: aiSource,
		storage:  storage,
	}
}

func (h *HealthHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: gin.H{
			"status":    "ok",
			"ai_source": h.aiSource,
			"storage":   h.storage,
		},
	})
}
