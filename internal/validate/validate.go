package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/set-night/aura/internal/config"
	"github.com/set-night/aura/internal/domain"
)

// Accepted MIME sets per media kind. Content sniffing is the sole arbiter:
// filenames and extensions are never consulted.
var (
	imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	videoTypes = []string{"video/mp4", "video/webm", "video/quicktime"}
	musicTypes = []string{"audio/mpeg", "audio/wav", "audio/ogg", "application/ogg", "audio/x-m4a", "audio/mp4"}
)

// Error reports a rejected file together with the rule it broke.
// The wrapped rule is one of the domain validation sentinels.
type Error struct {
	Kind     domain.MediaKind
	Rule     error
	Detected string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s rejected: %v (detected %s)", e.Kind, e.Rule, e.Detected)
}

func (e *Error) Unwrap() error {
	return e.Rule
}

// Prober reports the playable duration of a video file from its metadata.
type Prober interface {
	Duration(ctx context.Context, data []byte, mime string) (seconds float64, err error)
}

// Validator gates files before any network call is made.
type Validator struct {
	prober Prober
}

func NewValidator(prober Prober) *Validator {
	return &Validator{prober: prober}
}

// Image checks MIME type and size. Returns the detected MIME on success.
func (v *Validator) Image(data []byte) (string, error) {
	return check(domain.MediaImage, data, imageTypes, config.MaxImageSize)
}

// Music checks MIME type and size. Returns the detected MIME on success.
func (v *Validator) Music(data []byte) (string, error) {
	return check(domain.MediaMusic, data, musicTypes, config.MaxAudioSize)
}

// Video checks MIME type, size and duration. The duration probe decodes
// container metadata and honours ctx cancellation; a file whose duration
// cannot be determined is rejected.
func (v *Validator) Video(ctx context.Context, data []byte) (string, error) {
	mime, err := check(domain.MediaVideo, data, videoTypes, config.MaxVideoSize)
	if err != nil {
		return "", err
	}

	probeCtx, cancel := context.WithTimeout(ctx, config.ProbeTimeout)
	defer cancel()

	seconds, err := v.prober.Duration(probeCtx, data, mime)
	if err != nil {
		return "", fmt.Errorf("probe video duration: %w", err)
	}
	if seconds > config.MaxVideoDuration.Seconds() {
		return "", &Error{Kind: domain.MediaVideo, Rule: domain.ErrVideoTooLong, Detected: mime}
	}
	return mime, nil
}

// DetectKind routes a file of unknown origin (e.g. a Telegram document) to
// the media kind its sniffed MIME type belongs to.
func DetectKind(data []byte) (domain.MediaKind, bool) {
	detected := mimetype.Detect(data).String()
	switch {
	case strings.HasPrefix(detected, "image/"):
		return domain.MediaImage, true
	case strings.HasPrefix(detected, "video/"):
		return domain.MediaVideo, true
	case strings.HasPrefix(detected, "audio/"):
		return domain.MediaMusic, true
	}
	return "", false
}

func check(kind domain.MediaKind, data []byte, accepted []string, maxSize int64) (string, error) {
	detected := mimetype.Detect(data)

	ok := false
	for _, t := range accepted {
		if detected.Is(t) {
			ok = true
			break
		}
	}
	if !ok {
		return "", &Error{Kind: kind, Rule: domain.ErrUnsupportedType, Detected: detected.String()}
	}

	if int64(len(data)) > maxSize {
		return "", &Error{Kind: kind, Rule: domain.ErrFileTooLarge, Detected: detected.String()}
	}

	return detected.String(), nil
}
