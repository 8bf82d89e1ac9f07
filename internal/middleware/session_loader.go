package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/domain"
	"github.com/set-night/aura/internal/service"
)

type ctxKey string

const SessionKey ctxKey = "session"

// GetSession extracts the chat session from context.
func GetSession(ctx context.Context) *domain.Session {
	s, ok := ctx.Value(SessionKey).(*domain.Session)
	if !ok {
		return nil
	}
	return s
}

// SessionLoader returns middleware that resolves the chat's session and puts
// it into the handler context. The session is the only state container; it is
// created here on first contact, seeded with the welcome message.
func SessionLoader(sessions *service.SessionService) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if chatID := updateChatID(update); chatID != 0 {
				ctx = context.WithValue(ctx, SessionKey, sessions.GetOrCreate(chatID))
			}

			next(ctx, b, update)
		}
	}
}
