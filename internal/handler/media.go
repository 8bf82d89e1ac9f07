package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/aura/internal/aura"
	"github.com/set-night/aura/internal/config"
	"github.com/set-night/aura/internal/domain"
	"github.com/set-night/aura/internal/middleware"
	tg "github.com/set-night/aura/internal/telegram"
	"github.com/set-night/aura/internal/validate"
)

// HandleMedia routes an incoming media message to the upload pipeline for its
// kind. Documents are routed by sniffed content type.
func (h *Handler) HandleMedia(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	msg := update.Message
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return
	}

	switch {
	case len(msg.Photo) > 0:
		// Highest resolution variant is last
		photo := msg.Photo[len(msg.Photo)-1]
		h.handlePhoto(ctx, b, sess, photo.FileID)
	case msg.Video != nil:
		h.handleVideo(ctx, b, sess, msg.Video.FileID)
	case msg.Audio != nil:
		h.handleAudio(ctx, b, sess, msg.Audio.FileID)
	case msg.Voice != nil:
		h.handleAudio(ctx, b, sess, msg.Voice.FileID)
	case msg.Document != nil:
		h.handleDocument(ctx, b, sess, msg.Document.FileID)
	case msg.Sticker != nil:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: sess.ChatID(),
			Text:   "❌ 지원하지 않는 파일 형식입니다. 이미지, 영상, 음악 파일만 보낼 수 있습니다.",
		})
	}
}

func (h *Handler) handlePhoto(ctx context.Context, b *bot.Bot, sess *domain.Session, fileID string) {
	chatID := sess.ChatID()

	data, name, err := tg.DownloadFile(ctx, b, fileID, config.MaxImageSize)
	if err != nil {
		slog.Error("download photo", "error", err, "chat_id", chatID)
		h.sendMediaError(ctx, b, chatID, err)
		return
	}

	stop := tg.StartAction(ctx, b, chatID, models.ChatActionUploadPhoto)
	defer stop()

	reqCtx, cancel := context.WithTimeout(ctx, config.UploadTimeout)
	defer cancel()

	att, err := h.uploads.StageImage(reqCtx, sess, aura.File{Name: name, Data: data})
	if err != nil {
		h.sendMediaError(ctx, b, chatID, err)
		return
	}

	h.tgLogger.LogUpload(chatID, string(domain.MediaImage), att.Name, len(data))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🖼 이미지가 업로드되었습니다. 다음 메시지에 첨부됩니다.",
		ReplyMarkup: tg.InlineKeyboard(
			tg.ButtonRow(tg.InlineButton("🎵 이미지로 음악 생성", "gen_music")),
		),
	})
}

func (h *Handler) handleVideo(ctx context.Context, b *bot.Bot, sess *domain.Session, fileID string) {
	chatID := sess.ChatID()

	data, name, err := tg.DownloadFile(ctx, b, fileID, config.MaxVideoSize)
	if err != nil {
		slog.Error("download video", "error", err, "chat_id", chatID)
		h.sendMediaError(ctx, b, chatID, err)
		return
	}

	file := aura.File{Name: name, Data: data}

	// Best-effort processing time estimate before the long pipeline call
	statusText := "⏳ 영상을 처리하고 있습니다..."
	estCtx, cancelEst := context.WithTimeout(ctx, config.EstimateTimeout)
	if seconds, err := h.aura.EstimateVideoTime(estCtx, file); err == nil && seconds > 0 {
		statusText = fmt.Sprintf("⏳ 영상을 처리하고 있습니다...\n예상 소요시간: 약 %d초", seconds)
	}
	cancelEst()

	statusMsg, _ := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   statusText,
	})

	stop := tg.StartAction(ctx, b, chatID, models.ChatActionUploadVideo)
	defer stop()

	reqCtx, cancel := context.WithTimeout(ctx, config.GenerateTimeout)
	defer cancel()

	att, err := h.uploads.StageVideo(reqCtx, sess, file)
	if statusMsg != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: statusMsg.ID,
		})
	}
	if err != nil {
		h.sendMediaError(ctx, b, chatID, err)
		return
	}

	h.tgLogger.LogUpload(chatID, string(domain.MediaVideo), att.Name, len(data))

	if att.Data != nil {
		// Backend streamed the processed clip back; show it inline
		if err := tg.SendVideoBytes(ctx, b, chatID, att.Name, att.Data, "🎬 처리된 영상입니다. 다음 메시지에 첨부됩니다."); err != nil {
			slog.Error("send processed video", "error", err, "chat_id", chatID)
		}
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🎬 영상이 업로드되었습니다. 다음 메시지에 첨부됩니다.",
	})
}

func (h *Handler) handleAudio(ctx context.Context, b *bot.Bot, sess *domain.Session, fileID string) {
	chatID := sess.ChatID()

	data, name, err := tg.DownloadFile(ctx, b, fileID, config.MaxAudioSize)
	if err != nil {
		slog.Error("download audio", "error", err, "chat_id", chatID)
		h.sendMediaError(ctx, b, chatID, err)
		return
	}

	stop := tg.StartAction(ctx, b, chatID, models.ChatActionUploadDocument)
	defer stop()

	reqCtx, cancel := context.WithTimeout(ctx, config.UploadTimeout)
	defer cancel()

	att, err := h.uploads.StageMusic(reqCtx, sess, aura.File{Name: name, Data: data})
	if err != nil {
		h.sendMediaError(ctx, b, chatID, err)
		return
	}

	h.tgLogger.LogUpload(chatID, string(domain.MediaMusic), att.Name, len(data))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🎵 음악이 업로드되었습니다. 다음 메시지에 첨부됩니다.",
	})
}

// handleDocument sniffs a generic document and treats it as the media kind its
// content belongs to. The type reported by content sniffing is the sole
// arbiter; the filename is ignored.
func (h *Handler) handleDocument(ctx context.Context, b *bot.Bot, sess *domain.Session, fileID string) {
	chatID := sess.ChatID()

	data, name, err := tg.DownloadFile(ctx, b, fileID, config.MaxVideoSize)
	if err != nil {
		slog.Error("download document", "error", err, "chat_id", chatID)
		h.sendMediaError(ctx, b, chatID, err)
		return
	}

	kind, ok := validate.DetectKind(data)
	if !ok {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ 지원하지 않는 파일 형식입니다. 이미지, 영상, 음악 파일만 보낼 수 있습니다.",
		})
		return
	}

	switch kind {
	case domain.MediaImage:
		h.stageDocument(ctx, b, sess, aura.File{Name: name, Data: data}, h.uploads.StageImage, domain.MediaImage)
	case domain.MediaVideo:
		h.handleVideoBytes(ctx, b, sess, aura.File{Name: name, Data: data})
	case domain.MediaMusic:
		h.stageDocument(ctx, b, sess, aura.File{Name: name, Data: data}, h.uploads.StageMusic, domain.MediaMusic)
	}
}

type stageFunc func(context.Context, *domain.Session, aura.File) (*domain.Attachment, error)

func (h *Handler) stageDocument(ctx context.Context, b *bot.Bot, sess *domain.Session, file aura.File, stage stageFunc, kind domain.MediaKind) {
	chatID := sess.ChatID()

	reqCtx, cancel := context.WithTimeout(ctx, config.UploadTimeout)
	defer cancel()

	att, err := stage(reqCtx, sess, file)
	if err != nil {
		h.sendMediaError(ctx, b, chatID, err)
		return
	}

	h.tgLogger.LogUpload(chatID, string(kind), att.Name, len(file.Data))

	text := "🎵 음악이 업로드되었습니다. 다음 메시지에 첨부됩니다."
	params := &bot.SendMessageParams{ChatID: chatID, Text: text}
	if kind == domain.MediaImage {
		params.Text = "🖼 이미지가 업로드되었습니다. 다음 메시지에 첨부됩니다."
		params.ReplyMarkup = tg.InlineKeyboard(
			tg.ButtonRow(tg.InlineButton("🎵 이미지로 음악 생성", "gen_music")),
		)
	}
	b.SendMessage(ctx, params)
}

func (h *Handler) handleVideoBytes(ctx context.Context, b *bot.Bot, sess *domain.Session, file aura.File) {
	chatID := sess.ChatID()

	reqCtx, cancel := context.WithTimeout(ctx, config.GenerateTimeout)
	defer cancel()

	att, err := h.uploads.StageVideo(reqCtx, sess, file)
	if err != nil {
		h.sendMediaError(ctx, b, chatID, err)
		return
	}

	h.tgLogger.LogUpload(chatID, string(domain.MediaVideo), att.Name, len(file.Data))

	if att.Data != nil {
		tg.SendVideoBytes(ctx, b, chatID, att.Name, att.Data, "🎬 처리된 영상입니다. 다음 메시지에 첨부됩니다.")
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🎬 영상이 업로드되었습니다. 다음 메시지에 첨부됩니다.",
	})
}

// sendMediaError turns a validation/upload failure into a user-facing notice
// naming the rule broken. Failures are local: nothing is retried and the
// session stays usable.
func (h *Handler) sendMediaError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	text := "❌ 파일 처리 중 오류가 발생했습니다."

	var vErr *validate.Error
	var apiErr *aura.APIError
	switch {
	case errors.Is(err, domain.ErrBusy):
		text = "⏳ 이전 요청이 끝날 때까지 기다려 주세요."
	case errors.As(err, &vErr):
		text = validationNotice(vErr)
	case errors.As(err, &apiErr):
		text = fmt.Sprintf("❌ 업로드 실패: %s", apiErr.Detail)
		h.tgLogger.LogError(apiErr, "upload")
	default:
		h.tgLogger.LogError(err, "upload")
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

func validationNotice(vErr *validate.Error) string {
	switch vErr.Kind {
	case domain.MediaImage:
		if errors.Is(vErr.Rule, domain.ErrFileTooLarge) {
			return "❌ 이미지 크기가 너무 큽니다. (최대 10MB)"
		}
		return "❌ 지원하지 않는 이미지 형식입니다."
	case domain.MediaVideo:
		switch {
		case errors.Is(vErr.Rule, domain.ErrFileTooLarge):
			return "❌ 파일 크기가 너무 큽니다. (최대 100MB)"
		case errors.Is(vErr.Rule, domain.ErrVideoTooLong):
			return "❌ 영상은 30초 이하만 업로드 가능합니다."
		}
		return "❌ 지원하지 않는 영상 형식입니다."
	case domain.MediaMusic:
		if errors.Is(vErr.Rule, domain.ErrFileTooLarge) {
			return "❌ 음악 파일이 너무 큽니다. (최대 50MB)"
		}
		return "❌ 지원하지 않는 음악 형식입니다."
	}
	return "❌ 지원하지 않는 파일 형식입니다."
}
