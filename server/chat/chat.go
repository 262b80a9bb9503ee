package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const ErrorReply = "Error connecting to the chatbot."

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type Message struct {
	Text   string
	Sender Sender
}

type Bot interface {
	Chat(ctx context.Context, message string) (string, error)
}

type Transcript struct {
	mu       sync.Mutex
	open     bool
	messages []Message
	lastUsed time.Time
}

// Send appends the user message and exactly one bot reply. Blank input is ignored.
func (t *Transcript) Send(ctx context.Context, bot Bot, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	t.append(Message{Text: text, Sender: SenderUser})

	reply, err := bot.Chat(ctx, text)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to get chatbot reply", slog.Any("err", err))
		reply = ErrorReply
	}

	t.append(Message{Text: reply, Sender: SenderBot})
}

func (t *Transcript) append(msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	messages := make([]Message, len(t.messages))
	copy(messages, t.messages)
	return messages
}

func (t *Transcript) Open() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *Transcript) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = !t.open
	return t.open
}
