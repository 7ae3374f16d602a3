package handler

import (
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Cors      *CorsHandler
	Health    *HealthHandler
	Project   ProjectHandler
	Node      NodeHandler
	Edge      *EdgeHandler
	Knowledge *KnowledgeHandler
	Document  *DocumentHandler
	Chat      *ChatHandler
}

// NewRouter mounts every route under /api.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(h.Cors.CorsMiddleware)

	router.GET("/health", h.Health.HandleHealth)

	api := router.Group("/api")
	api.GET("/health", h.Health.HandleHealth)

	projects := api.Group("/projects")
	{
		projects.GET("", h.Project.HandleListProjects)
		projects.POST("", h.Project.HandleCreateProject)
		projects.GET("/:id", h.Project.HandleGetProject)
		projects.PUT("/:id", h.Project.HandleUpdateProject)
		projects.DELETE("/:id", h.Project.HandleDeleteProject)
		projects.GET("/:id/export", h.Project.HandleExportProject)
	}

	nodes := api.Group("/nodes")
	{
		nodes.GET("", h.Node.HandleListNodes)
		nodes.POST("", h.Node.HandleCreateNode)
		nodes.GET("/:id", h.Node.HandleGetNode)
		nodes.PUT("/:id", h.Node.HandleUpdateNode)
		nodes.DELETE("/:id", h.Node.HandleDeleteNode)
		nodes.POST("/:id/move", h.Node.HandleMoveNode)
		nodes.POST("/:id/status", h.Node.HandleUpdateStatus)
		nodes.GET("/:id/children", h.Node.HandleChildren)
	}

	edges := api.Group("/edges")
	{
		edges.GET("", h.Edge.HandleListEdges)
		edges.POST("", h.Edge.HandleCreateEdge)
		edges.DELETE("/:id", h.Edge.HandleDeleteEdge)
	}

	knowledge := api.Group("/knowledge")
	{
		knowledge.GET("", h.Knowledge.HandleListKnowledge)
		knowledge.POST("", h.Knowledge.HandleUploadKnowledge)
		knowledge.GET("/search", h.Knowledge.HandleSearchKnowledge)
		knowledge.GET("/:id", h.Knowledge.HandleGetKnowledge)
		knowledge.DELETE("/:id", h.Knowledge.HandleDeleteKnowledge)
		knowledge.GET("/:id/file", h.Document.ServeDocument)
	}

	api.GET("/chat-history", h.Chat.HandleChatHistory)
	api.POST("/chat/node/:id", h.Chat.HandleChatNode)
	api.GET("/chat/node/:id/ws", h.Chat.HandleChatSocket)
	api.GET("/search/knowledge", h.Chat.HandleRelevantKnowledge)

	return router
}
