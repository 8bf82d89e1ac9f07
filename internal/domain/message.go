package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind describes what a transcript entry renders as.
type MessageKind string

const (
	KindText   MessageKind = "text"
	KindImage  MessageKind = "image"
	KindVideo  MessageKind = "video"
	KindMusic  MessageKind = "music"
	KindSystem MessageKind = "system"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// MediaKind identifies one of the three attachable media types.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaMusic MediaKind = "music"
)

// MediaKinds lists all attachable kinds in display order.
var MediaKinds = []MediaKind{MediaImage, MediaVideo, MediaMusic}

// Message is a single transcript entry. ID and Timestamp are assigned when the
// message is appended to a session and are immutable afterwards.
type Message struct {
	ID            string
	Content       string
	Kind          MessageKind
	Sender        Sender
	Timestamp     time.Time
	AttachmentRef string
	Metadata      map[string]string
}

// Draft is a message before the session assigns its ID and timestamp.
type Draft struct {
	Content       string
	Kind          MessageKind
	Sender        Sender
	AttachmentRef string
	Metadata      map[string]string
}

func newMessageID() string {
	return uuid.New().String()
}
