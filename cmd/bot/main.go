package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/aura"
	"github.com/set-night/aura/internal/config"
	"github.com/set-night/aura/internal/handler"
	"github.com/set-night/aura/internal/middleware"
	"github.com/set-night/aura/internal/service"
	"github.com/set-night/aura/internal/telegram"
	"github.com/set-night/aura/internal/validate"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	sessions, err := service.NewSessionService()
	if err != nil {
		slog.Error("failed to create session service", "error", err)
		os.Exit(1)
	}
	auraClient := aura.NewClient(cfg.AuraBaseURL)
	validator := validate.NewValidator(validate.NewMetadataProber())
	uploads := service.NewUploadService(auraClient, validator)
	chat := service.NewChatService(auraClient)
	limiter := middleware.NewLimiter()

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(limiter),
			middleware.SessionLoader(sessions),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			// Media and plain text both land here; command handlers match first
			h.HandleMessage(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize telegram logger
	tgLogger := telegram.NewTelegramLogger(b, cfg)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:      b,
		Cfg:      cfg,
		Sessions: sessions,
		Uploads:  uploads,
		Chat:     chat,
		Aura:     auraClient,
		TgLogger: tgLogger,
	})

	// Register all handlers
	h.Register()

	// Start rate limiter window cleanup goroutine
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup()
			}
		}
	}()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID, "backend", cfg.AuraBaseURL)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
