package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/mindmap-be/service"
	"github.com/tieubaoca/mindmap-be/types"
)

var contentTypes = map[types.FileType]string{
	types.FILE_TYPE_PDF:  "application/pdf",
	types.FILE_TYPE_TXT:  "text/plain; charset=utf-8",
	types.FILE_TYPE_MD:   "text/markdown; charset=utf-8",
	types.FILE_TYPE_DOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// DocumentHandler streams the stored file behind a knowledge document.
type DocumentHandler struct {
	knowledgeService service.KnowledgeService
	fileService      *service.FileService
}

func NewDocumentHandler(knowledgeService service.KnowledgeService, fileService *service.FileService) *DocumentHandler {
	return &DocumentHandler{
		knowledgeService: knowledgeService,
		fileService:      fileService,
	}
}

func (h *DocumentHandler) ServeDocument(c *gin.Context) {
	doc, err := h.knowledgeService.GetDocument(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	path := h.fileService.Path(doc.FileName)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  false,
			Message: "File not found",
		})
		return
	}

	c.Header("Content-Type", contentTypes[doc.FileType])
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", doc.FileName))
	http.ServeFile(c.Writer, c.Request, path)
}
