package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNoRevision indicates there is nothing to restore.
var ErrNoRevision = errors.New("no revision available")

// Revision is one persisted snapshot of the task document.
type Revision struct {
	ID        string
	CreatedAt time.Time
	Reason    string
	Document  string
}

// RevisionLog reads and writes revisions.
type RevisionLog struct {
	db *sql.DB
}

// NewRevisionLog creates a log over an open database.
func NewRevisionLog(db *sql.DB) *RevisionLog {
	return &RevisionLog{db: db}
}

// Append records a new revision of the document.
func (l *RevisionLog) Append(ctx context.Context, reason, document string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO revisions (id, created_at, reason, document) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), time.Now().UTC().Format(time.RFC3339Nano), reason, document,
	)
	if err != nil {
		return fmt.Errorf("appending revision: %w", err)
	}
	return nil
}

// List returns the most recent revisions, newest first.
func (l *RevisionLog) List(ctx context.Context, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, created_at, reason, document FROM revisions
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// Previous returns the revision immediately before the newest one, i.e.
// the state an undo should restore.
func (l *RevisionLog) Previous(ctx context.Context) (*Revision, error) {
	revs, err := l.List(ctx, 2)
	if err != nil {
		return nil, err
	}
	if len(revs) < 2 {
		return nil, ErrNoRevision
	}
	return &revs[1], nil
}

// Latest returns the newest revision.
func (l *RevisionLog) Latest(ctx context.Context) (*Revision, error) {
	revs, err := l.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(revs) == 0 {
		return nil, ErrNoRevision
	}
	return &revs[0], nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRevision(row rowScanner) (Revision, error) {
	var r Revision
	var created string
	if err := row.Scan(&r.ID, &created, &r.Reason, &r.Document); err != nil {
		return Revision{}, fmt.Errorf("scanning revision: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Revision{}, fmt.Errorf("parsing revision timestamp: %w", err)
	}
	r.CreatedAt = ts
	return r, nil
}
