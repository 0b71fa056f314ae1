// Package sqlite provides a storage.Storage that keeps the whole students
// document as a single JSON blob inside a SQLite file.
//
// SQLite is used purely as a durable, transactional byte container here:
// the document is still read and written as one unit, exactly like the
// JSON file medium, but each write is committed by the SQLite journal so
// a crash mid-write leaves the previous document intact.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// documentName is the row key of the students document.
const documentName = "students"

// SQLite holds an open database handle.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path and creates the documents table
// if it does not already exist.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// name — document key, one row per document
	// body — the JSON-encoded document
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Read returns the stored document, or nil when the row does not exist yet.
func (s *SQLite) Read() ([]byte, error) {
	stmt, err := s.Db.Prepare("SELECT body FROM documents WHERE name = ? LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("Read: prepare: %w", err)
	}
	defer stmt.Close()

	var body string
	err = stmt.QueryRow(documentName).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Read: scan: %w", err)
	}

	return []byte(body), nil
}

// Write upserts the document row.
func (s *SQLite) Write(data []byte) error {
	stmt, err := s.Db.Prepare(`
		INSERT INTO documents (name, body) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body
	`)
	if err != nil {
		return fmt.Errorf("Write: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(documentName, string(data)); err != nil {
		return fmt.Errorf("Write: exec: %w", err)
	}

	return nil
}

// Close closes the database handle.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
