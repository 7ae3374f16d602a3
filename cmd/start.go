/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/mindmap-be/handler"
)

// startServerCmd represents the startServer command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the mind-map server",
	Long:  `Starts the HTTP and websocket server for projects, knowledge and node chat`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.Close()

		if a.logger.Enabled(ctx, slog.LevelDebug) {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		router := handler.NewRouter(handler.Handlers{
			Cors:      handler.NewCorsHandler(cfg.CorsOrigin),
			Health:    handler.NewHealthHandler(a.assistant.Source(), cfg.Storage),
			Project:   handler.NewProjectHandler(a.projects),
			Node:      handler.NewNodeHandler(a.nodes),
			Edge:      handler.NewEdgeHandler(a.edges),
			Knowledge: handler.NewKnowledgeHandler(a.knowledge),
			Document:  handler.NewDocumentHandler(a.knowledge, a.files),
			Chat:      handler.NewChatHandler(a.chat, a.websocket),
		})

		server := &http.Server{
			Addr:        ":" + cfg.Port,
			Handler:     router,
			ReadTimeout: 30 * time.Second,
			IdleTimeout: 60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			a.logger.Info("shutdown signal received, stopping")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("server shutdown failed", "error", err)
			}
		}()

		a.logger.Info("starting server", "port", cfg.Port, "storage", cfg.Storage, "ai_source", a.assistant.Source())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("port", "p", "", "port to listen on, overrides the config")
}
