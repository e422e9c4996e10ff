// Package testutil provides shared test helpers for setting up vaults
// and statistics databases.
package testutil

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/voss/kohl/internal/vault"
)

// TestVault creates a temporary vault directory with a vault.Provider.
func TestVault(t *testing.T) (string, vault.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := vault.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// TestStatsDB creates a temporary statistics database with the
// reader's schema and returns its path plus an open read-write handle
// for seeding rows. Both are cleaned up automatically.
func TestStatsDB(t *testing.T) (string, *sql.DB) {
	t.Helper()
	dbFile, err := os.CreateTemp("", "kohl-stats-*.sqlite3")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := sql.Open("sqlite3", dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE book (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		title   TEXT NOT NULL,
		authors TEXT NOT NULL DEFAULT '',
		pages   INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE page_stat (
		id_book    INTEGER NOT NULL,
		page       INTEGER NOT NULL,
		start_time INTEGER NOT NULL,
		duration   INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return dbFile.Name(), db
}

// SeedBook inserts a book with its page sessions and returns the book id.
// Each session is (page, startTime, duration).
func SeedBook(t *testing.T, db *sql.DB, title, authors string, pages int, sessions [][3]int64) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO book (title, authors, pages) VALUES (?, ?, ?)`,
		title, authors, pages)
	if err != nil {
		t.Fatal(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range sessions {
		if _, err := db.Exec(`INSERT INTO page_stat (id_book, page, start_time, duration) VALUES (?, ?, ?, ?)`,
			id, s[0], s[1], s[2]); err != nil {
			t.Fatal(err)
		}
	}
	return id
}
