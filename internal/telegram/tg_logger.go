package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/set-night/aura/internal/config"
)

// TelegramLogger mirrors notable events into an ops chat, one forum topic per
// event type. Disabled when LOG_TELEGRAM_CHAT_ID is unset.
type TelegramLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewTelegramLogger(b *bot.Bot, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{bot: b, cfg: cfg}
}

type LogType string

const (
	LogTypeError    LogType = "error"
	LogTypeUpload   LogType = "upload"
	LogTypeGenerate LogType = "generate"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.getTopicID(logType)
	if topicID == 0 {
		return
	}

	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		ParseMode:       "Markdown",
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, context string) {
	msg := fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeError, msg)
}

func (l *TelegramLogger) LogUpload(chatID int64, kind, name string, size int) {
	msg := fmt.Sprintf("📎 *Upload*\n\n*Chat:* `%d`\n*Kind:* %s\n*File:* `%s`\n*Size:* %d bytes",
		chatID, kind, name, size)
	l.Log(LogTypeUpload, msg)
}

func (l *TelegramLogger) LogGenerate(chatID int64, name string, took time.Duration) {
	msg := fmt.Sprintf("🎵 *Music Generated*\n\n*Chat:* `%d`\n*Source:* `%s`\n*Took:* %s",
		chatID, name, took.Round(time.Second))
	l.Log(LogTypeGenerate, msg)
}

func (l *TelegramLogger) getTopicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeUpload:
		return l.cfg.LogTopicUpload
	case LogTypeGenerate:
		return l.cfg.LogTopicGenerate
	default:
		return 0
	}
}
