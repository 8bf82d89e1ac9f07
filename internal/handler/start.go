package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/domain"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	welcomeText := domain.WelcomeMessage + "\n\n" +
		"🎨 이미지, 🎬 영상(30초 이하), 🎵 음악 파일을 보내면 다음 메시지에 첨부됩니다.\n" +
		"이미지를 보낸 뒤 버튼을 누르면 이미지에 어울리는 음악을 생성해 드립니다.\n\n" +
		"📋 *명령어:*\n" +
		"/clear — 대화 초기화\n" +
		"/status — 첨부 상태 확인\n\n" +
		"메시지를 보내서 대화를 시작하세요!"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      welcomeText,
		ParseMode: models.ParseModeMarkdown,
	})
}
