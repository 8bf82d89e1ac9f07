package domain

import (
	"sync"
	"time"
)

// WelcomeMessage opens every session and survives Reset.
const WelcomeMessage = "안녕하세요! AURA입니다. 무엇을 도와드릴까요?"

// State is the submission state of a session. A tagged state instead of a bare
// busy flag: Submitting implies exactly one outstanding chat request.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// Attachment is a media reference staged for the next chat submission.
// URL is either a backend-assigned URL or an ephemeral memory:// reference,
// in which case Data holds the bytes it wraps.
type Attachment struct {
	URL      string
	Name     string
	MIME     string
	Data     []byte
	StagedAt time.Time
}

// Session holds one chat's transcript, staged attachments and submission state.
// Handlers run on concurrent goroutines, so all access goes through the mutex.
type Session struct {
	mu       sync.Mutex
	chatID   int64
	messages []Message
	staged   map[MediaKind]*Attachment
	state    State
}

// NewSession creates a session seeded with the welcome message.
func NewSession(chatID int64) *Session {
	s := &Session{
		chatID: chatID,
		staged: make(map[MediaKind]*Attachment),
		state:  StateIdle,
	}
	s.messages = []Message{s.welcome()}
	return s
}

func (s *Session) welcome() Message {
	return Message{
		ID:        newMessageID(),
		Content:   WelcomeMessage,
		Kind:      KindText,
		Sender:    SenderBot,
		Timestamp: time.Now(),
	}
}

// ChatID returns the Telegram chat this session belongs to.
func (s *Session) ChatID() int64 {
	return s.chatID
}

// Append assigns an ID and timestamp to the draft and appends it to the
// transcript. It always succeeds and returns the stored message.
func (s *Session) Append(d Draft) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		ID:            newMessageID(),
		Content:       d.Content,
		Kind:          d.Kind,
		Sender:        d.Sender,
		Timestamp:     time.Now(),
		AttachmentRef: d.AttachmentRef,
		Metadata:      d.Metadata,
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Messages returns a copy of the transcript in display order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the transcript length.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Stage replaces the staged attachment for the given kind. A nil attachment
// clears it.
func (s *Session) Stage(kind MediaKind, att *Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if att == nil {
		delete(s.staged, kind)
		return
	}
	att.StagedAt = time.Now()
	s.staged[kind] = att
}

// Staged returns the staged attachment for the kind, or nil.
func (s *Session) Staged(kind MediaKind) *Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staged[kind]
}

// StagedCount returns how many media kinds currently have a staged attachment.
func (s *Session) StagedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.staged)
}

// ClearStaged drops all staged attachments.
func (s *Session) ClearStaged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = make(map[MediaKind]*Attachment)
}

// TryBegin transitions Idle -> Submitting. Returns ErrBusy if a submission or
// upload is already outstanding.
func (s *Session) TryBegin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return ErrBusy
	}
	s.state = StateSubmitting
	return nil
}

// End transitions back to Idle regardless of outcome.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
}

// State returns the current submission state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset truncates the transcript back to a fresh welcome message, clears all
// staged attachments and returns the session to Idle. Calling it twice in a
// row yields the same state as calling it once.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = []Message{s.welcome()}
	s.staged = make(map[MediaKind]*Attachment)
	s.state = StateIdle
}
