package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/set-night/aura/internal/aura"
	"github.com/set-night/aura/internal/domain"
)

// FallbackNotice is the fixed reply shown when the chat submission fails.
const FallbackNotice = "요청 처리 중 오류가 발생했습니다. 다시 시도해 주세요."

// ChatService runs the chat submission flow: Idle -> Submitting -> Idle.
type ChatService struct {
	client *aura.Client
}

func NewChatService(client *aura.Client) *ChatService {
	return &ChatService{client: client}
}

// SubmitResult reports what one submission appended to the transcript.
type SubmitResult struct {
	UserMessages []domain.Message
	Reply        domain.Message
	Failed       bool
}

// Submit bundles the typed text and all staged attachments into one combined
// chat request. On success the bot's reply is appended; on failure a fixed
// fallback notice is appended instead. Either way the staged attachments are
// cleared and the session returns to Idle. Failures never escape the flow.
//
// Returns domain.ErrEmptySubmission when there is neither text nor a staged
// attachment, and domain.ErrBusy when a submission is already outstanding;
// in both cases the transcript is untouched.
func (s *ChatService) Submit(ctx context.Context, sess *domain.Session, text string) (*SubmitResult, error) {
	text = strings.TrimSpace(text)
	if text == "" && sess.StagedCount() == 0 {
		return nil, domain.ErrEmptySubmission
	}

	if err := sess.TryBegin(); err != nil {
		return nil, err
	}
	defer sess.End()

	result := &SubmitResult{}

	if text != "" {
		result.UserMessages = append(result.UserMessages, sess.Append(domain.Draft{
			Content: text,
			Kind:    domain.KindText,
			Sender:  domain.SenderUser,
		}))
	}

	chatReq := aura.ChatRequest{Message: text}
	for _, kind := range domain.MediaKinds {
		att := sess.Staged(kind)
		if att == nil {
			continue
		}

		result.UserMessages = append(result.UserMessages, sess.Append(domain.Draft{
			Kind:          messageKind(kind),
			Sender:        domain.SenderUser,
			AttachmentRef: att.URL,
			Metadata:      map[string]string{"name": att.Name, "mime": att.MIME},
		}))

		switch kind {
		case domain.MediaImage:
			chatReq.ImageURL = att.URL
		case domain.MediaVideo:
			chatReq.VideoURL = att.URL
		case domain.MediaMusic:
			chatReq.AudioURL = att.URL
		}
	}

	reply, err := s.client.Chat(ctx, chatReq)
	if err != nil {
		slog.Error("chat submission failed", "error", err, "chat_id", sess.ChatID())
		reply = FallbackNotice
		result.Failed = true
	}

	result.Reply = sess.Append(domain.Draft{
		Content: reply,
		Kind:    domain.KindText,
		Sender:  domain.SenderBot,
	})

	sess.ClearStaged()
	return result, nil
}

func messageKind(kind domain.MediaKind) domain.MessageKind {
	switch kind {
	case domain.MediaImage:
		return domain.KindImage
	case domain.MediaVideo:
		return domain.KindVideo
	case domain.MediaMusic:
		return domain.KindMusic
	default:
		return domain.KindText
	}
}
