package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Notice is a cached entry from the university news site.
type Notice struct {
	Title     string
	URL       string
	Published string
	Source    string
}

// NoticeRepository caches scraped notices so the portal stays usable
// when the news site is down.
type NoticeRepository struct {
	db *DB
}

// NewNoticeRepository creates a repository backed by db.
func NewNoticeRepository(db *DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// ReplaceAll swaps the cached notice list for a fresh scrape.
// An empty scrape keeps the previous cache.
func (r *NoticeRepository) ReplaceAll(ctx context.Context, notices []Notice) error {
	if len(notices) == 0 {
		return nil
	}

	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notices`); err != nil {
		return fmt.Errorf("failed to clear notice cache: %w", err)
	}

	fetchedAt := now().Unix()
	query := `
	INSERT INTO notices (url, title, published, source, position, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO NOTHING
	`
	for i, n := range notices {
		if _, err := tx.ExecContext(ctx, query, n.URL, n.Title, n.Published, n.Source, i, fetchedAt); err != nil {
			return fmt.Errorf("failed to insert notice %q: %w", n.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notice cache: %w", err)
	}
	return nil
}

// List returns cached notices in scrape order, newest scrape first.
// limit <= 0 returns everything.
func (r *NoticeRepository) List(ctx context.Context, limit int) ([]Notice, error) {
	query := `SELECT url, title, published, source FROM notices ORDER BY position`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notices []Notice
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.URL, &n.Title, &n.Published, &n.Source); err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notices: %w", err)
	}

	return notices, nil
}

// FetchedAt returns when the cache was last refreshed.
// Returns the zero time when the cache is empty.
func (r *NoticeRepository) FetchedAt(ctx context.Context) (time.Time, error) {
	// MAX over an empty table scans as NULL
	var fetchedAt sql.NullInt64
	err := r.db.conn.QueryRowContext(ctx, `SELECT MAX(fetched_at) FROM notices`).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !fetchedAt.Valid) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read cache age: %w", err)
	}
	return time.Unix(fetchedAt.Int64, 0), nil
}
