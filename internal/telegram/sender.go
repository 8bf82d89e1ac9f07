package telegram

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/config"
)

const MaxMessageLen = config.MaxTelegramMessageLen

// SendLongMessage sends a potentially long message, splitting it into parts if
// needed. Falls back to plain text if Markdown parsing fails.
func SendLongMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, replyToID *int) error {
	text = FixMarkdown(text)
	parts := SplitMessage(text, MaxMessageLen)

	for _, part := range parts {
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      part,
			ParseMode: models.ParseModeMarkdownV1,
		}
		if replyToID != nil {
			params.ReplyParameters = &models.ReplyParameters{
				MessageID: *replyToID,
			}
			replyToID = nil // only reply to first part
		}

		_, err := b.SendMessage(ctx, params)
		if err != nil {
			// Fallback to plain text
			slog.Warn("markdown send failed, falling back to plain text", "error", err)
			params.ParseMode = ""
			_, err = b.SendMessage(ctx, params)
			if err != nil {
				return fmt.Errorf("send message: %w", err)
			}
		}
	}

	return nil
}

// SendAudioBytes sends an in-memory audio file as a playable audio message.
func SendAudioBytes(ctx context.Context, b *bot.Bot, chatID int64, filename string, data []byte, title, caption string) error {
	_, err := b.SendAudio(ctx, &bot.SendAudioParams{
		ChatID:  chatID,
		Audio:   &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Title:   title,
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("send audio: %w", err)
	}
	return nil
}

// SendVideoBytes sends an in-memory video file as a playable video message.
func SendVideoBytes(ctx context.Context, b *bot.Bot, chatID int64, filename string, data []byte, caption string) error {
	_, err := b.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:  chatID,
		Video:   &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	return nil
}

// StartAction sends the given chat action every 4 seconds until the returned
// cancel function is called. Used for typing / upload indicators while a
// backend request is outstanding.
func StartAction(ctx context.Context, b *bot.Bot, chatID int64, action models.ChatAction) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(4 * time.Second)
		defer ticker.Stop()
		// Send immediately
		b.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: action,
		})
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.SendChatAction(ctx, &bot.SendChatActionParams{
					ChatID: chatID,
					Action: action,
				})
			}
		}
	}()
	return cancel
}

// StartTyping shows the "typing..." indicator until cancelled.
func StartTyping(ctx context.Context, b *bot.Bot, chatID int64) context.CancelFunc {
	return StartAction(ctx, b, chatID, models.ChatActionTyping)
}
