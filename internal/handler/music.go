package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/aura"
	"github.com/set-night/aura/internal/config"
	"github.com/set-night/aura/internal/domain"
	"github.com/set-night/aura/internal/middleware"
	tg "github.com/set-night/aura/internal/telegram"
)

// handleGenerateMusic turns the staged image into generated music. Canonical
// two-step flow: the image was already uploaded when it was staged; generation
// is a separate call, preceded by a best-effort processing time estimate.
func (h *Handler) handleGenerateMusic(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	})

	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}
	chatID := sess.ChatID()

	att := sess.Staged(domain.MediaImage)
	if att == nil || att.Data == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ 먼저 이미지를 업로드해 주세요.",
		})
		return
	}

	if err := sess.TryBegin(); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⏳ 이전 요청이 끝날 때까지 기다려 주세요.",
		})
		return
	}
	defer sess.End()

	file := aura.File{Name: att.Name, Data: att.Data}

	// 1. Best-effort time estimate
	statusText := "🎵 음악 생성중입니다..."
	estCtx, cancelEst := context.WithTimeout(ctx, config.EstimateTimeout)
	if seconds, err := h.aura.EstimateProcessingTime(estCtx, file); err == nil && seconds > 0 {
		statusText = fmt.Sprintf("🎵 음악 생성중입니다...\n예상 소요시간: 약 %d초", seconds)
	}
	cancelEst()

	statusMsg, _ := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   statusText,
	})

	stop := tg.StartAction(ctx, b, chatID, models.ChatActionUploadDocument)
	defer stop()

	// 2. Generation call; the wav streams back as binary
	started := time.Now()
	reqCtx, cancel := context.WithTimeout(ctx, config.GenerateTimeout)
	defer cancel()

	result, err := h.aura.GenerateMusic(reqCtx, file)

	if statusMsg != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: statusMsg.ID,
		})
	}

	if err != nil {
		slog.Error("generate music", "error", err, "chat_id", chatID)
		text := "❌ 음악 생성 중 오류가 발생했습니다."
		var apiErr *aura.APIError
		if errors.As(err, &apiErr) {
			text = fmt.Sprintf("❌ 음악 생성 실패: %s", apiErr.Detail)
		}
		h.tgLogger.LogError(err, "generate music")
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   text,
		})
		return
	}

	title := fmt.Sprintf("AURA - %s", att.Name)
	sess.Append(domain.Draft{
		Kind:          domain.KindMusic,
		Sender:        domain.SenderBot,
		AttachmentRef: result.URL,
		Metadata: map[string]string{
			"title":  title,
			"source": att.Name,
			"mime":   result.MIME,
		},
	})

	if err := tg.SendAudioBytes(ctx, b, chatID, result.Filename, result.Data, title, "🎵 이미지에서 생성된 음악입니다."); err != nil {
		slog.Error("send generated music", "error", err, "chat_id", chatID)
		return
	}

	h.tgLogger.LogGenerate(chatID, att.Name, time.Since(started))
}
