package service

import (
	"context"
	"fmt"

	"github.com/set-night/aura/internal/aura"
	"github.com/set-night/aura/internal/domain"
	"github.com/set-night/aura/internal/validate"
)

// UploadService validates a file, submits it to the backend and stages the
// returned reference on the session. Validation failures never reach the
// network; upload failures leave the staged slot untouched.
type UploadService struct {
	client    *aura.Client
	validator *validate.Validator
}

func NewUploadService(client *aura.Client, validator *validate.Validator) *UploadService {
	return &UploadService{client: client, validator: validator}
}

// StageImage validates and uploads an image, staging its backend URL.
func (s *UploadService) StageImage(ctx context.Context, sess *domain.Session, f aura.File) (*domain.Attachment, error) {
	if err := sess.TryBegin(); err != nil {
		return nil, err
	}
	defer sess.End()

	mime, err := s.validator.Image(f.Data)
	if err != nil {
		return nil, err
	}

	result, err := s.client.UploadImage(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	att := &domain.Attachment{URL: result.URL, Name: f.Name, MIME: mime, Data: f.Data}
	sess.Stage(domain.MediaImage, att)
	return att, nil
}

// StageMusic validates and uploads an audio file, staging its backend URL.
func (s *UploadService) StageMusic(ctx context.Context, sess *domain.Session, f aura.File) (*domain.Attachment, error) {
	if err := sess.TryBegin(); err != nil {
		return nil, err
	}
	defer sess.End()

	mime, err := s.validator.Music(f.Data)
	if err != nil {
		return nil, err
	}

	result, err := s.client.UploadAudio(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("upload audio: %w", err)
	}

	att := &domain.Attachment{URL: result.URL, Name: f.Name, MIME: mime}
	sess.Stage(domain.MediaMusic, att)
	return att, nil
}

// StageVideo validates a clip (type, size, duration), runs it through the
// backend pipeline and stages the result. When the backend streams the
// processed clip back as binary, the staged reference is ephemeral and the
// attachment carries the bytes for inline display.
func (s *UploadService) StageVideo(ctx context.Context, sess *domain.Session, f aura.File) (*domain.Attachment, error) {
	if err := sess.TryBegin(); err != nil {
		return nil, err
	}
	defer sess.End()

	mime, err := s.validator.Video(ctx, f.Data)
	if err != nil {
		return nil, err
	}

	result, err := s.client.ProcessVideo(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("process video: %w", err)
	}

	att := &domain.Attachment{URL: result.URL, Name: f.Name, MIME: mime}
	if result.Ephemeral() {
		att.Data = result.Data
		att.MIME = result.MIME
		att.Name = result.Filename
	}
	sess.Stage(domain.MediaVideo, att)
	return att, nil
}
