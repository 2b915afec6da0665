package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/usestring/scribebot/internal/cache"
	"github.com/usestring/scribebot/internal/config"
	"github.com/usestring/scribebot/internal/discord"
	"github.com/usestring/scribebot/internal/highlight"
	"github.com/usestring/scribebot/internal/i18n"
	"github.com/usestring/scribebot/internal/logging"
	"github.com/usestring/scribebot/internal/nav"
	"github.com/usestring/scribebot/internal/paging"
	"github.com/usestring/scribebot/internal/render"
	"github.com/usestring/scribebot/internal/search"
	"github.com/usestring/scribebot/pkg/blossom"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	cleanup, err := logging.Setup(logging.FromConfig(cfg))
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	bot, err := buildBot(cfg)
	if err != nil {
		slog.Error("failed to build bot", "error", err)
		os.Exit(1)
	}

	slog.Info("starting scribebot")
	if err := bot.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("bot error", "error", err)
		os.Exit(1)
	}

	slog.Info("bot stopped")
}

// buildBot wires the corpus client, caches, search engine, navigation
// controller and Discord adapter together.
func buildBot(cfg *config.Config) (*discord.Bot, error) {
	corpus := blossom.New(
		blossom.WithBaseURL(cfg.BlossomBaseURL),
		blossom.WithAPIKey(cfg.BlossomAPIKey),
		blossom.WithHTTPClient(&http.Client{Timeout: cfg.HTTPClientTimeout}),
	)

	results, err := cache.NewResultCache(cfg.SearchCacheCapacity)
	if err != nil {
		return nil, err
	}
	volunteers, err := cache.NewVolunteerCache(cfg.VolunteerCacheMaxSize)
	if err != nil {
		return nil, err
	}
	pager, err := paging.NewPager(cfg.ResultsPerPage, cfg.RequestPageSize)
	if err != nil {
		return nil, err
	}
	strings, err := i18n.Load(cfg.Locale)
	if err != nil {
		return nil, err
	}

	renderer := render.New(highlight.New(cfg.MaxOccurrences, cfg.HighlightWidth), strings)
	engine := search.NewEngine(corpus, results, volunteers, pager, renderer)

	bot, err := discord.New(cfg, engine, strings)
	if err != nil {
		return nil, err
	}
	bot.AttachController(nav.NewController(results, engine, pager, bot))
	return bot, nil
}
