package service

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/set-night/aura/internal/config"
	"github.com/set-night/aura/internal/domain"
)

// SessionService hands out per-chat sessions. Sessions live in memory only and
// the LRU caps how many idle chats are kept around; eviction simply means the
// next message from that chat starts a fresh transcript.
type SessionService struct {
	cache *lru.Cache[int64, *domain.Session]
}

func NewSessionService() (*SessionService, error) {
	cache, err := lru.New[int64, *domain.Session](config.MaxSessions)
	if err != nil {
		return nil, err
	}
	return &SessionService{cache: cache}, nil
}

// GetOrCreate returns the session for the chat, creating one seeded with the
// welcome message if none exists.
func (s *SessionService) GetOrCreate(chatID int64) *domain.Session {
	if sess, ok := s.cache.Get(chatID); ok {
		return sess
	}
	sess := domain.NewSession(chatID)
	// A concurrent first message for the same chat may have raced us; keep
	// whichever session won.
	if prev, ok, _ := s.cache.PeekOrAdd(chatID, sess); ok {
		return prev
	}
	return sess
}

// Reset restores the chat's session to the single welcome message.
func (s *SessionService) Reset(chatID int64) {
	s.GetOrCreate(chatID).Reset()
}

// Count returns how many sessions are currently held.
func (s *SessionService) Count() int {
	return s.cache.Len()
}
