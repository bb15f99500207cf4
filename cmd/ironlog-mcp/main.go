package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/ironlog/internal/config"
	ironmcp "github.com/claude/ironlog/internal/mcp"
	"github.com/claude/ironlog/internal/storage"
	"github.com/claude/ironlog/internal/tracker"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	serverURL := flag.String("server-url", "", "query a running ironlog at this URL instead of opening storage")
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.Log.SlogLevel())
	if *serverURL != "" {
		cfg.MCP.ServerURL = *serverURL
	}

	var ds ironmcp.DataSource
	if cfg.MCP.ServerURL != "" {
		ds = ironmcp.NewHTTPClient(cfg.MCP.ServerURL)
		log.Info("mcp using remote server", "url", cfg.MCP.ServerURL)
	} else {
		ctx := context.Background()
		kv, err := storage.Open(ctx, cfg.Storage.Driver, cfg.Storage.DSN())
		if err != nil {
			log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
			os.Exit(1)
		}
		defer kv.Close()
		ds = ironmcp.NewTrackerSource(tracker.New(ctx, kv, log))
		log.Info("mcp using local storage", "driver", cfg.Storage.Driver)
	}

	s := ironmcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
