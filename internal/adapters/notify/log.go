package notify

import (
	"context"

	"github.com/zhukovg/energolog/internal/domain"
	"github.com/zhukovg/energolog/internal/observability"
)

// Log is the notifier for local mode: reminders go to the structured
// log instead of a transport.
type Log struct{}

func NewLog() *Log {
	return &Log{}
}

func (Log) Send(ctx context.Context, user domain.UserID, text string) error {
	observability.LoggerFromContext(ctx).Info("reminder",
		"user_id", string(user), "text", text)
	return nil
}
