package handler

import (
	"github.com/go-telegram/bot"
	"github.com/set-night/aura/internal/aura"
	"github.com/set-night/aura/internal/config"
	"github.com/set-night/aura/internal/service"
	"github.com/set-night/aura/internal/telegram"
)

// Handler holds all dependencies needed by command, message and callback
// handlers.
type Handler struct {
	bot      *bot.Bot
	cfg      *config.Config
	sessions *service.SessionService
	uploads  *service.UploadService
	chat     *service.ChatService
	aura     *aura.Client
	tgLogger *telegram.TelegramLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Cfg      *config.Config
	Sessions *service.SessionService
	Uploads  *service.UploadService
	Chat     *service.ChatService
	Aura     *aura.Client
	TgLogger *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:      deps.Bot,
		cfg:      deps.Cfg,
		sessions: deps.Sessions,
		uploads:  deps.Uploads,
		chat:     deps.Chat,
		aura:     deps.Aura,
		tgLogger: deps.TgLogger,
	}
}
