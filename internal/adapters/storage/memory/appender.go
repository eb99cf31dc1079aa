package memory

import (
	"context"
	"errors"
	"sync"
)

// RowAppender is a simple in-memory implementation of
// domain.RowAppender. It is NOT persistent and is only suitable for
// development / local mode and tests.
type RowAppender struct {
	mu   sync.Mutex
	rows [][]string

	// FailAfter, when > 0, makes every append past the first FailAfter
	// rows fail. Tests use it to exercise partial-failure behavior.
	FailAfter int
}

func NewRowAppender() *RowAppender {
	return &RowAppender{}
}

func (s *RowAppender) AppendRow(ctx context.Context, columns []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAfter > 0 && len(s.rows) >= s.FailAfter {
		return errors.New("simulated append failure")
	}

	row := make([]string, len(columns))
	copy(row, columns)
	s.rows = append(s.rows, row)
	return nil
}

// Rows returns a copy of everything appended so far.
func (s *RowAppender) Rows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
