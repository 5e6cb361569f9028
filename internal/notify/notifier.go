// Package notify delivers run results to outbound channels. The ticket
// digest and the evaluation summary are fanned out to every configured
// sender; a failing channel never blocks the others.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Sender is one outbound notification channel.
type Sender interface {
	// Send delivers a notification with the given title and message body.
	Send(ctx context.Context, title, message string) error
	// Name identifies the channel, e.g. "telegram".
	Name() string
}

// Notifier fans a notification out to all registered senders.
type Notifier struct {
	senders []Sender
	logger  *slog.Logger
}

// NewNotifier creates a Notifier delivering to the given senders. An empty
// sender list yields a no-op notifier.
func NewNotifier(senders []Sender, logger *slog.Logger) *Notifier {
	return &Notifier{
		senders: senders,
		logger:  logger.With(slog.String("component", "notify")),
	}
}

// Broadcast sends to every sender. Per-sender failures are collected and
// joined so one dead channel does not stop delivery to the rest.
func (n *Notifier) Broadcast(ctx context.Context, title, message string) error {
	var errs []error
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		n.logger.DebugContext(ctx, "notification sent",
			slog.String("sender", s.Name()),
			slog.String("title", title),
		)
	}
	return errors.Join(errs...)
}
