package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/mindmap-be/service"
	"github.com/tieubaoca/mindmap-be/types"
)

type NodeHandler interface {
	HandleListNodes(c *gin.Context)
	HandleCreateNode(c *gin.Context)
	HandleGetNode(c *gin.Context)
	HandleUpdateNode(c *gin.Context)
	HandleDeleteNode(c *gin.Context)
	HandleMoveNode(c *gin.Context)
	HandleUpdateStatus(c *gin.Context)
	HandleChildren(c *gin.Context)
}

type nodeHandler struct {
	nodeService service.NodeService
}

func NewNodeHandler(nodeService service.NodeService) NodeHandler {
	return &nodeHandler{
		nodeService: nodeService,
	}
}

func (h *nodeHandler) HandleListNodes(c *gin.Context) {
	nodes, err := h.nodeService.ListNodes(c, c.Query("project"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, nodes)
}

func (h *nodeHandler) HandleCreateNode(c *gin.Context) {
	var req types.CreateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid request body")
		return
	}
	node, err := h.nodeService.CreateNode(c, req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusCreated, node)
}

func (h *nodeHandler) HandleGetNode(c *gin.Context) {
	node, err := h.nodeService.GetNode(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, node)
}

func (h *nodeHandler) HandleUpdateNode(c *gin.Context) {
	var req types.UpdateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid request body")
		return
	}
	node, err := h.nodeService.UpdateNode(c, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, node)
}

func (h *nodeHandler) HandleDeleteNode(c *gin.Context) {
	if err := h.nodeService.DeleteNode(c, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}

func (h *nodeHandler) HandleMoveNode(c *gin.Context) {
	var req types.MoveNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid request body")
		return
	}
	node, err := h.nodeService.MoveNode(c, c.Param("id"), req.Position)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, node)
}

func (h *nodeHandler) HandleUpdateStatus(c *gin.Context) {
	var req types.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid request body")
		return
	}
	node, err := h.nodeService.UpdateStatus(c, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, node)
}

func (h *nodeHandler) HandleChildren(c *gin.Context) {
	children, err := h.nodeService.Children(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, children)
}
