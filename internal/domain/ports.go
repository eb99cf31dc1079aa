package domain

import "context"

// Classifier maps free text to taxonomy tags. Implementations must be
// safe for concurrent use; the lexical strategy never fails, so the
// contract has no error return.
type Classifier interface {
	Classify(text string) Tags
}

// CompletionClient defines how the core talks to an external
// text-completion service.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// RowAppender appends one row to the tabular backend. The destination
// (sheet, collection, table) is fixed at construction time.
type RowAppender interface {
	AppendRow(ctx context.Context, columns []string) error
}

// Notifier delivers an outbound reminder directive to a user's chat
// identity. Delivery guarantees are the transport's responsibility.
type Notifier interface {
	Send(ctx context.Context, user UserID, text string) error
}
