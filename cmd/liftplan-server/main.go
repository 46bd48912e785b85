// Command liftplan-server serves the planner over HTTP: a REST API for
// schedules, the catalog and the progress log, plus an MCP endpoint for
// LLM clients. With -stdio it speaks MCP over stdin/stdout instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/liftplan/internal/advisor"
	"github.com/claude/liftplan/internal/config"
	"github.com/claude/liftplan/internal/mcp"
	"github.com/claude/liftplan/internal/server"
	"github.com/claude/liftplan/internal/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	stdio := flag.Bool("stdio", false, "serve MCP over stdio instead of HTTP")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Load config
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open stores
	catalog, err := storage.OpenCatalog(cfg.WorkoutsPath())
	if err != nil {
		log.Error("failed to open catalog", "error", err)
		os.Exit(1)
	}
	progress, err := storage.OpenProgress(cfg.ProgressPath())
	if err != nil {
		log.Error("failed to open progress log", "error", err)
		os.Exit(1)
	}

	mcpSrv := mcp.New(catalog, progress, Version, log)

	if *stdio {
		// stdout belongs to the protocol in stdio mode
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
		log.Info("LiftPlan MCP server starting", "version", Version, "transport", "stdio")
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			log.Error("stdio server error", "error", err)
			os.Exit(1)
		}
		return
	}

	log.Info("LiftPlan starting", "version", Version)

	adv := advisor.Select(cfg.Advisor.URL, cfg.Advisor.Model, cfg.Advisor.APIKey, cfg.Advisor.Timeout())
	srv := server.New(catalog, progress, adv, cfg.Server.APIKey, log)

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))
	mux.Handle("/", srv)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("listen failed", "addr", addr, "error", err)
		os.Exit(1)
	}
	log.Info("server starting", "addr", addr)

	httpSrv := &http.Server{Handler: mux}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
