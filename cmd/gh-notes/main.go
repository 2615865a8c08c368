package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"gh-notes/internal/config"
	"gh-notes/internal/handlers"
	"gh-notes/internal/http"
	"gh-notes/internal/render"
	"gh-notes/internal/search"
	"gh-notes/internal/service"
	"gh-notes/internal/vault"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx := context.Background()

	// Crawl the notes folder once; the tree and index are fixed for the process lifetime
	snapshot, err := vault.NewSnapshot(ctx, cfg.NotesPath())
	if err != nil {
		log.Fatalf("Failed to crawl notes folder: %v", err)
	}
	slog.Info("Notes crawled", "root", snapshot.Root(), "documents", snapshot.DocumentCount())

	index := search.Build(snapshot.Records(), search.DefaultOptions())
	slog.Info("Search index built", "documents", index.Len())

	renderer := render.New(render.DefaultOptions())
	noteService := service.NewNoteService(snapshot, renderer, index)

	views, err := handlers.NewViews(handlers.Site{
		Name:            cfg.SiteName,
		GithubNotesLink: cfg.GithubNotesLink,
		Font:            cfg.Font,
		DarkModeToggle:  cfg.DarkModeToggle,
	})
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	static, err := handlers.NewStaticHandler(renderer)
	if err != nil {
		log.Fatalf("Failed to prepare static assets: %v", err)
	}

	// Create router with dependencies
	deps := &http.Deps{
		NoteService: noteService,
		Views:       views,
		Static:      static,
		Index:       index,
		Username:    cfg.Username,
		Password:    cfg.Password,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.Port
	slog.Info("Notes app started", "addr", addr, "site", cfg.SiteName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
