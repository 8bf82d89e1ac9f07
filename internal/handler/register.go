package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypePrefix, h.handleClear)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypePrefix, h.handleStatus)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.handleStats)

	// Image-to-music generation callback
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "gen_music", bot.MatchTypePrefix, h.handleGenerateMusic)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cur", bot.MatchTypeExact, h.handleNoop)

	// Note: plain text and media messages fall through to the bot's default
	// handler, which dispatches via HandleMessage.
}

// handleNoop acknowledges callbacks from non-interactive inline buttons.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
