package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/domain"
	"github.com/set-night/aura/internal/middleware"
)

var kindLabels = map[domain.MediaKind]string{
	domain.MediaImage: "🖼 이미지",
	domain.MediaVideo: "🎬 영상",
	domain.MediaMusic: "🎵 음악",
}

func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}

	text := fmt.Sprintf("📊 *상태*\n\n메시지 수: %d\n", sess.Len())

	if sess.State() == domain.StateSubmitting {
		text += "⏳ 요청 처리 중입니다.\n"
	}

	staged := ""
	for _, kind := range domain.MediaKinds {
		if att := sess.Staged(kind); att != nil {
			staged += fmt.Sprintf("• %s: `%s`\n", kindLabels[kind], att.Name)
		}
	}
	if staged == "" {
		text += "\n첨부된 파일이 없습니다."
	} else {
		text += "\n*다음 메시지에 첨부:*\n" + staged
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
}
