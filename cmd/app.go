package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/tieubaoca/mindmap-be/config"
	"github.com/tieubaoca/mindmap-be/database"
	"github.com/tieubaoca/mindmap-be/repository"
	"github.com/tieubaoca/mindmap-be/service"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// app holds the wired services shared by every command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	files     *service.FileService
	assistant *service.AssistantService
	projects  service.ProjectService
	nodes     service.NodeService
	edges     service.EdgeService
	knowledge service.KnowledgeService
	chat      service.ChatService
	websocket *service.WebSocketService

	mongoClient *mongo.Client
	redisClient *redis.Client
	model       service.LanguageModel
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

type repositories struct {
	projects  repository.ProjectRepo
	nodes     repository.NodeRepo
	edges     repository.EdgeRepo
	knowledge repository.KnowledgeRepo
	chats     repository.ChatRepo
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: newLogger(cfg.LogLevel),
	}
	slog.SetDefault(a.logger)

	repos, err := a.openRepositories(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	files, err := service.NewFileService(cfg.UploadDir)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.files = files

	model, err := service.NewLanguageModel(ctx, service.AssistantConfig{
		Provider:        cfg.AI.Provider,
		ModelIdentifier: cfg.AI.Model,
		Credential:      cfg.APIKey(),
		BaseURL:         cfg.AI.Endpoint,
		Timeout:         cfg.AI.Timeout,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create language model: %w", err)
	}
	a.model = model
	if model == nil {
		a.logger.Info("no ai credential configured, using mock responder")
	}

	search := service.NewKnowledgeSearchService(repos.knowledge)
	a.assistant = service.NewAssistantService(search, model, cfg.AI.Timeout, a.logger)
	a.projects = service.NewProjectService(repos.projects, repos.nodes, repos.edges, repos.knowledge, repos.chats)
	a.nodes = service.NewNodeService(repos.projects, repos.nodes, repos.edges, repos.chats)
	a.edges = service.NewEdgeService(repos.nodes, repos.edges)
	a.knowledge = service.NewKnowledgeService(repos.projects, repos.knowledge, files, service.NewTextExtractor(nil), a.logger)
	a.chat = service.NewChatService(repos.nodes, repos.chats, search, a.assistant)
	a.websocket = service.NewWebSocketService(a.chat, a.logger)
	return a, nil
}

func (a *app) openRepositories(ctx context.Context) (*repositories, error) {
	var repos *repositories
	switch a.cfg.Storage {
	case config.STORAGE_MEMORY:
		store := repository.NewMemoryStore()
		repos = &repositories{
			projects:  store,
			nodes:     store,
			edges:     store,
			knowledge: store,
			chats:     store,
		}
	default:
		client, err := database.NewMongoClient(ctx, a.cfg.MongoDBURI)
		if err != nil {
			return nil, err
		}
		a.mongoClient = client
		db := client.Database(a.cfg.Database)
		repos = &repositories{
			projects:  repository.NewProjectRepo(ctx, db),
			nodes:     repository.NewNodeRepo(ctx, db),
			edges:     repository.NewEdgeRepo(ctx, db),
			knowledge: repository.NewKnowledgeRepo(ctx, db),
			chats:     repository.NewChatRepo(ctx, db),
		}
	}

	if a.cfg.RedisAddr != "" {
		client, err := database.NewRedisClient(ctx, a.cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		a.redisClient = client
		repos.knowledge = repository.NewCachedKnowledgeRepo(repos.knowledge, client, a.cfg.KnowledgeCacheTTL, a.logger)
		a.logger.Info("knowledge cache enabled", "redis_addr", a.cfg.RedisAddr, "ttl", a.cfg.KnowledgeCacheTTL)
	}
	return repos, nil
}

func (a *app) Close() {
	if closer, ok := a.model.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("failed to close language model", "error", err)
		}
	}
	if a.redisClient != nil {
		a.redisClient.Close()
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(context.Background()); err != nil {
			a.logger.Warn("failed to disconnect MongoDB", "error", err)
		}
	}
}
