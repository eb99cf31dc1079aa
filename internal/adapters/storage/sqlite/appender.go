package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS journal (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	date    TEXT NOT NULL,
	text    TEXT NOT NULL,
	energy  TEXT NOT NULL,
	roles   TEXT NOT NULL DEFAULT '',
	skills  TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT ''
);`

// Appender implements domain.RowAppender over a local sqlite file with
// the same fixed column layout the gateway produces. It is the hermetic
// backend for development and tests.
type Appender struct {
	db *sql.DB
}

func Open(path string) (*Appender, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal table: %w", err)
	}
	return &Appender{db: db}, nil
}

func (a *Appender) AppendRow(ctx context.Context, columns []string) error {
	if len(columns) != 6 {
		return fmt.Errorf("expected 6 columns, got %d", len(columns))
	}

	_, err := a.db.ExecContext(ctx,
		`INSERT INTO journal (date, text, energy, roles, skills, summary) VALUES (?, ?, ?, ?, ?, ?)`,
		columns[0], columns[1], columns[2], columns[3], columns[4], columns[5])
	if err != nil {
		return fmt.Errorf("sqlite append: %w", err)
	}
	return nil
}

// Count reports how many rows the journal holds.
func (a *Appender) Count(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (a *Appender) Close() error {
	return a.db.Close()
}
