// Package stats reads the reader's statistics database. The database
// lives on the mounted device and is opened strictly read-only; kohl
// never writes to it.
package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/voss/kohl/internal/apperr"
)

// BookStats summarizes reading activity for one book.
type BookStats struct {
	Title         string
	Authors       string
	Pages         int
	ReadPages     int
	TotalReadTime time.Duration
	FirstOpen     time.Time
	LastOpen      time.Time
}

// Provider is the interface the importer consumes for reading
// statistics. Consumers should depend on this rather than *DB so
// tests can substitute a stub.
type Provider interface {
	BookStats(title, authors string) (*BookStats, error)
	Close() error
}

// DB implements Provider over the reader statistics SQLite file.
type DB struct {
	conn *sql.DB
}

// Verify *DB satisfies Provider at compile time.
var _ Provider = (*DB)(nil)

// Open opens the statistics database read-only.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("stats: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("stats: ping: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// BookStats looks a book up by exact title, narrowing by authors when
// given, and aggregates its page reading sessions. Returns
// apperr.ErrNotFound when the book is not tracked.
func (db *DB) BookStats(title, authors string) (*BookStats, error) {
	query := `SELECT id, title, authors, pages FROM book WHERE title = ?`
	args := []any{title}
	if authors != "" {
		query += ` AND authors = ?`
		args = append(args, authors)
	}

	var id int64
	bs := &BookStats{}
	err := db.conn.QueryRow(query, args...).Scan(&id, &bs.Title, &bs.Authors, &bs.Pages)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stats: book %q: %w", title, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("stats: query book: %w", err)
	}

	var readPages, totalSecs sql.NullInt64
	var firstOpen, lastOpen sql.NullInt64
	err = db.conn.QueryRow(`
		SELECT COUNT(DISTINCT page), COALESCE(SUM(duration), 0),
		       MIN(start_time), MAX(start_time)
		FROM page_stat WHERE id_book = ?
	`, id).Scan(&readPages, &totalSecs, &firstOpen, &lastOpen)
	if err != nil {
		return nil, fmt.Errorf("stats: aggregate sessions: %w", err)
	}

	bs.ReadPages = int(readPages.Int64)
	bs.TotalReadTime = time.Duration(totalSecs.Int64) * time.Second
	if firstOpen.Valid {
		bs.FirstOpen = time.Unix(firstOpen.Int64, 0)
	}
	if lastOpen.Valid {
		bs.LastOpen = time.Unix(lastOpen.Int64, 0)
	}
	return bs, nil
}
