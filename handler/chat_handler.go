package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/mindmap-be/service"
	"github.com/tieubaoca/mindmap-be/types"
)

type ChatHandler struct {
	chatService      service.ChatService
	websocketService *service.WebSocketService
}

func NewChatHandler(chatService service.ChatService, websocketService *service.WebSocketService) *ChatHandler {
	return &ChatHandler{
		chatService:      chatService,
		websocketService: websocketService,
	}
}

func (h *ChatHandler) HandleChatNode(c *gin.Context) {
	var req types.ChatNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid request body")
		return
	}
	turn, err := h.chatService.SendMessage(c, c.Param("id"), req.Message, req.UseKnowledgeOrDefault())
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, turn)
}

func (h *ChatHandler) HandleChatHistory(c *gin.Context) {
	history, err := h.chatService.History(c, c.Query("node"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, history)
}

func (h *ChatHandler) HandleRelevantKnowledge(c *gin.Context) {
	res, err := h.chatService.RelevantKnowledge(c, c.Query("node"), c.Query("query"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, res)
}

func (h *ChatHandler) HandleChatSocket(c *gin.Context) {
	h.websocketService.HandleNodeChat(c.Writer, c.Request, c.Param("id"))
}
