package memory

import (
	"context"
	"sync"

	"github.com/zhukovg/energolog/internal/domain"
)

// Notification is one recorded outbound reminder.
type Notification struct {
	User domain.UserID
	Text string
}

// Notifier records reminder directives instead of delivering them.
type Notifier struct {
	mu   sync.Mutex
	sent []Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Send(ctx context.Context, user domain.UserID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, Notification{User: user, Text: text})
	return nil
}

// Sent returns a copy of everything recorded so far.
func (n *Notifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]Notification(nil), n.sent...)
}
