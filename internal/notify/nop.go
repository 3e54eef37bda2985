package notify

import (
	"context"
	"log/slog"
)

// Nop drops notifications. It is used when notify.enabled is false.
type Nop struct {
	logger *slog.Logger
}

func NewNop(logger *slog.Logger) *Nop {
	return &Nop{logger: logger}
}

func (n *Nop) Notify(_ context.Context, subject, _, _ string) error {
	n.logger.Debug("notifications disabled, dropping", "subject", subject)
	return nil
}
