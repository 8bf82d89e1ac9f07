package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsWithWelcome(t *testing.T) {
	sess := NewSession(42)

	msgs := sess.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, WelcomeMessage, msgs[0].Content)
	assert.Equal(t, SenderBot, msgs[0].Sender)
	assert.Equal(t, KindText, msgs[0].Kind)
	assert.NotEmpty(t, msgs[0].ID)
	assert.Equal(t, StateIdle, sess.State())
	assert.Equal(t, 0, sess.StagedCount())
}

func TestAppendIsMonotonicWithUniqueIDs(t *testing.T) {
	sess := NewSession(1)

	seen := map[string]bool{sess.Messages()[0].ID: true}
	for i := 0; i < 50; i++ {
		before := sess.Len()
		msg := sess.Append(Draft{Content: "x", Kind: KindText, Sender: SenderUser})
		assert.Equal(t, before+1, sess.Len())
		assert.False(t, seen[msg.ID], "duplicate message id %s", msg.ID)
		assert.False(t, msg.Timestamp.IsZero())
		seen[msg.ID] = true
	}
}

func TestStageReplacesAndClears(t *testing.T) {
	sess := NewSession(1)

	sess.Stage(MediaImage, &Attachment{URL: "https://x/a.png"})
	sess.Stage(MediaImage, &Attachment{URL: "https://x/b.png"})
	require.NotNil(t, sess.Staged(MediaImage))
	assert.Equal(t, "https://x/b.png", sess.Staged(MediaImage).URL)
	assert.Equal(t, 1, sess.StagedCount())

	// nil clears the slot
	sess.Stage(MediaImage, nil)
	assert.Nil(t, sess.Staged(MediaImage))
	assert.Equal(t, 0, sess.StagedCount())
}

func TestTryBeginGatesDuplicateSubmissions(t *testing.T) {
	sess := NewSession(1)

	require.NoError(t, sess.TryBegin())
	assert.Equal(t, StateSubmitting, sess.State())
	assert.ErrorIs(t, sess.TryBegin(), ErrBusy)

	sess.End()
	assert.Equal(t, StateIdle, sess.State())
	require.NoError(t, sess.TryBegin())
}

func TestResetIsIdempotent(t *testing.T) {
	sess := NewSession(1)
	sess.Append(Draft{Content: "hello", Kind: KindText, Sender: SenderUser})
	sess.Stage(MediaMusic, &Attachment{URL: "https://x/a.mp3"})
	require.NoError(t, sess.TryBegin())

	sess.Reset()
	first := snapshot(sess)

	sess.Reset()
	second := snapshot(sess)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, sess.Len())
	assert.Equal(t, 0, sess.StagedCount())
	assert.Equal(t, StateIdle, sess.State())
	assert.Equal(t, WelcomeMessage, sess.Messages()[0].Content)
}

type sessionShape struct {
	msgCount int
	contents []string
	staged   int
	state    State
}

func snapshot(s *Session) sessionShape {
	var contents []string
	for _, m := range s.Messages() {
		contents = append(contents, m.Content)
	}
	return sessionShape{
		msgCount: s.Len(),
		contents: contents,
		staged:   s.StagedCount(),
		state:    s.State(),
	}
}
