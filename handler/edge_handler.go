package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/mindmap-be/service"
	"github.com/tieubaoca/mindmap-be/types"
)

type EdgeHandler struct {
	edgeService service.EdgeService
}

func NewEdgeHandler(edgeService service.EdgeService) *EdgeHandler {
	return &EdgeHandler{
		edgeService: edgeService,
	}
}

func (h *EdgeHandler) HandleListEdges(c *gin.Context) {
	edges, err := h.edgeService.ListEdges(c, c.Query("project"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, edges)
}

func (h *EdgeHandler) HandleCreateEdge(c *gin.Context) {
	var req types.CreateEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid request body")
		return
	}
	edge, err := h.edgeService.CreateEdge(c, req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusCreated, edge)
}

func (h *EdgeHandler) HandleDeleteEdge(c *gin.Context) {
	if err := h.edgeService.DeleteEdge(c, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}
