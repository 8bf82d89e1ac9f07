package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/config"
	"github.com/set-night/aura/internal/domain"
	"github.com/set-night/aura/internal/middleware"
	tg "github.com/set-night/aura/internal/telegram"
)

// HandleText runs the chat submission flow for a plain text message: the text
// plus any staged attachments become one combined request to the backend.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	msg := update.Message

	// Skip commands
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}

	chatID := msg.Chat.ID

	// Typing indicator until the reply is out
	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	reqCtx, cancel := context.WithTimeout(ctx, config.ChatTimeout)
	defer cancel()

	result, err := h.chat.Submit(reqCtx, sess, msg.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBusy):
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "⏳ 이전 요청이 끝날 때까지 기다려 주세요.",
			})
		case errors.Is(err, domain.ErrEmptySubmission):
			// Nothing to send; stay quiet.
		}
		return
	}

	if result.Failed {
		h.tgLogger.LogError(errors.New("chat submission failed"), "chat")
	}

	tg.SendLongMessage(ctx, b, chatID, result.Reply.Content, nil)
}
