package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/config"
)

type rateWindow struct {
	start time.Time
	count int
}

// Limiter tracks per-chat message counts over a one-minute window.
type Limiter struct {
	mu      sync.Mutex
	windows map[int64]*rateWindow
}

func NewLimiter() *Limiter {
	return &Limiter{windows: make(map[int64]*rateWindow)}
}

// Allow increments the chat's counter and reports whether it is still within
// the per-minute limit.
func (l *Limiter) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[chatID]
	if !ok || now.Sub(w.start) >= time.Minute {
		l.windows[chatID] = &rateWindow{start: now, count: 1}
		return true
	}

	w.count++
	return w.count <= config.RateLimitPerChat
}

// Cleanup drops expired windows. Run periodically from main.
func (l *Limiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for id, w := range l.windows {
		if now.Sub(w.start) >= time.Minute {
			delete(l.windows, id)
		}
	}
}

// RateLimit returns middleware that enforces per-minute rate limits per chat.
func RateLimit(limiter *Limiter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit messages (not callbacks or other updates)
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if !limiter.Allow(chatID) {
				slog.Debug("rate limited", "chat_id", chatID)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ 요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
