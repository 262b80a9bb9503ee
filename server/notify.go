package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/disgo/webhook"
)

type webhookClient interface {
	CreateContent(content string, opts ...rest.RequestOpt) (*discord.Message, error)
	Close(ctx context.Context)
}

// Notifier posts short messages to a Discord webhook. A disabled notifier drops every message.
type Notifier struct {
	client webhookClient
}

func newNotifier(cfg NotificationsConfig) (*Notifier, error) {
	if !cfg.Enabled {
		return &Notifier{}, nil
	}

	client, err := webhook.NewWithURL(cfg.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}

	return &Notifier{
		client: client,
	}, nil
}

// Notify sends content in the background. Failures are only logged.
func (n *Notifier) Notify(ctx context.Context, content string) {
	if n == nil || n.client == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		if _, err := n.client.CreateContent(content, rest.WithCtx(ctx)); err != nil {
			slog.ErrorContext(ctx, "Failed to send notification", slog.Any("err", err))
		}
	}()
}

// Timestamp formats t the way Discord renders it in the reader's timezone.
func Timestamp(t time.Time) string {
	return discord.NewTimestamp(discord.TimestampStyleShortDateTime, t).String()
}

func (n *Notifier) Close() {
	if n == nil || n.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	n.client.Close(ctx)
}
