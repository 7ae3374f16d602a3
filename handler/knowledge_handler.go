package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/mindmap-be/service"
	"github.com/tieubaoca/mindmap-be/types"
)

const MAX_UPLOAD_SIZE = 10 << 20

type KnowledgeHandler struct {
	knowledgeService service.KnowledgeService
}

func NewKnowledgeHandler(knowledgeService service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledgeService: knowledgeService,
	}
}

func (h *KnowledgeHandler) HandleListKnowledge(c *gin.Context) {
	docs, err := h.knowledgeService.ListDocuments(c, c.Query("project"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, docs)
}

// HandleUploadKnowledge expects a multipart form with file, project and an
// optional title.
func (h *KnowledgeHandler) HandleUploadKnowledge(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		writeBadRequest(c, "Invalid file")
		return
	}
	defer file.Close()

	if header.Size > MAX_UPLOAD_SIZE {
		writeBadRequest(c, "File too large")
		return
	}
	content, err := io.ReadAll(io.LimitReader(file, MAX_UPLOAD_SIZE+1))
	if err != nil {
		writeBadRequest(c, "Invalid file")
		return
	}
	if len(content) > MAX_UPLOAD_SIZE {
		writeBadRequest(c, "File too large")
		return
	}

	doc, err := h.knowledgeService.Upload(c, c.PostForm("project"), c.PostForm("title"), header.Filename, content)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusCreated, doc)
}

func (h *KnowledgeHandler) HandleSearchKnowledge(c *gin.Context) {
	docs, err := h.knowledgeService.Search(c, c.Query("project"), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, docs)
}

func (h *KnowledgeHandler) HandleGetKnowledge(c *gin.Context) {
	doc, err := h.knowledgeService.GetDocument(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, doc)
}

func (h *KnowledgeHandler) HandleDeleteKnowledge(c *gin.Context) {
	if err := h.knowledgeService.DeleteDocument(c, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true})
}
