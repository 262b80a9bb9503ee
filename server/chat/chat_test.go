package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeBot struct {
	calls []string
	reply string
	err   error
}

func (b *fakeBot) Chat(_ context.Context, message string) (string, error) {
	b.calls = append(b.calls, message)
	return b.reply, b.err
}

func TestTranscript_Send(t *testing.T) {
	t.Run("blank input", func(t *testing.T) {
		bot := &fakeBot{reply: "hi"}
		var tr Transcript

		tr.Send(context.Background(), bot, "   \t")

		assert.Empty(t, tr.Messages())
		assert.Empty(t, bot.calls)
	})

	t.Run("reply", func(t *testing.T) {
		bot := &fakeBot{reply: "Hello! How can I help?"}
		var tr Transcript

		tr.Send(context.Background(), bot, "hello")

		assert.Equal(t, []string{"hello"}, bot.calls)
		assert.Equal(t, []Message{
			{Text: "hello", Sender: SenderUser},
			{Text: "Hello! How can I help?", Sender: SenderBot},
		}, tr.Messages())
	})

	t.Run("bot error", func(t *testing.T) {
		bot := &fakeBot{err: errors.New("connection refused")}
		var tr Transcript

		tr.Send(context.Background(), bot, "hello")

		assert.Equal(t, []Message{
			{Text: "hello", Sender: SenderUser},
			{Text: ErrorReply, Sender: SenderBot},
		}, tr.Messages())
	})
}

func TestTranscript_Toggle(t *testing.T) {
	var tr Transcript
	assert.False(t, tr.Open())
	assert.True(t, tr.Toggle())
	assert.True(t, tr.Open())
	assert.False(t, tr.Toggle())
}

func TestStore(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(time.Hour)
	s.now = func() time.Time { return now }

	a := s.Get("a")
	assert.Same(t, a, s.Get("a"))
	assert.Nil(t, s.Peek("b"))

	now = now.Add(30 * time.Minute)
	s.Get("b")

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, s.Evict())
	assert.Nil(t, s.Peek("a"))
	assert.NotNil(t, s.Peek("b"))

	s.Delete("b")
	assert.Nil(t, s.Peek("b"))
}
