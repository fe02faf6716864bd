// Package registry persists named schema documents in SQLite.
package registry

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/tablekit/pkg/schema"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no schema with the requested name exists.
var ErrNotFound = errors.New("schema not found")

// Entry is one stored schema document.
type Entry struct {
	ID        string
	Name      string
	Document  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a SQLite-backed schema registry.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new registry store instance.
func NewStore() *Store {
	return &Store{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *Store) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open registry database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping registry database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Init initializes the database schema.
func (s *Store) Init() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize registry schema: %w", err)
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// Save stores a schema document under a name, replacing any previous
// version. The document is validated before it is written; an invalid
// document never reaches the database.
func (s *Store) Save(name string, document []byte) (*Entry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if name == "" {
		return nil, fmt.Errorf("schema name must not be empty")
	}

	if _, err := schema.FromJSON(document); err != nil {
		return nil, fmt.Errorf("invalid schema document: %w", err)
	}

	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO schemas (id, name, document, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		generateID(), name, string(document), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save schema: %w", err)
	}

	return s.Get(name)
}

// Get retrieves a stored schema by name.
func (s *Store) Get(name string) (*Entry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	entry := &Entry{}
	var document string
	err := s.db.QueryRow(
		`SELECT id, name, document, created_at, updated_at FROM schemas WHERE name = ?`,
		name,
	).Scan(&entry.ID, &entry.Name, &document, &entry.CreatedAt, &entry.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %w", err)
	}

	entry.Document = []byte(document)
	return entry, nil
}

// List returns all stored schemas ordered by name.
func (s *Store) List() ([]*Entry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, name, document, created_at, updated_at FROM schemas ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		entry := &Entry{}
		var document string
		if err := rows.Scan(&entry.ID, &entry.Name, &document, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schema row: %w", err)
		}
		entry.Document = []byte(document)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	return entries, nil
}

// Delete removes a stored schema by name.
func (s *Store) Delete(name string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.Exec(`DELETE FROM schemas WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete schema: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete schema: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return nil
}

// Schema loads and rebuilds the stored schema by name.
func (s *Store) Schema(name string) (*schema.Schema, error) {
	entry, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return schema.FromJSON(entry.Document)
}
