package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Document kind constants
const (
	KindEmail    = "email"
	KindCalendar = "calendar"
	KindPayment  = "payment"
	KindNews     = "news"
	KindWeather  = "weather"
	KindGeneral  = "general"
)

// DocumentStore handles SQLite document and event storage
type DocumentStore struct {
	db *sql.DB
}

// DocumentRecord represents a free-text document in the store
type DocumentRecord struct {
	ID        string
	Kind      string
	Content   string
	Source    string
	CreatedAt time.Time
}

// EventRecord represents a calendar event. StartAt is the raw ISO-8601
// string as exported upstream; parsing is the caller's concern because
// upstream exports sometimes carry a stripped UTC offset.
type EventRecord struct {
	ID        string
	Name      string
	StartAt   string
	Location  string
	CreatedAt time.Time
}

// NewDocumentStore creates a new document store
func NewDocumentStore(dbPath string) (*DocumentStore, error) {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &DocumentStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// migrate creates the necessary tables
func (s *DocumentStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			content TEXT NOT NULL,
			source TEXT,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			start_at TEXT NOT NULL,
			location TEXT,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents(kind);
		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// DB exposes the underlying database so the vector store can share it.
func (s *DocumentStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection
func (s *DocumentStore) Close() error {
	return s.db.Close()
}

// SaveDocument saves a document to the store
func (s *DocumentStore) SaveDocument(doc *DocumentRecord) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO documents (id, kind, content, source, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, doc.ID, doc.Kind, doc.Content, doc.Source, doc.CreatedAt)

	return err
}

// GetDocument retrieves a document by ID
func (s *DocumentStore) GetDocument(id string) (*DocumentRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, kind, content, source, created_at
		FROM documents WHERE id = ?
	`, id)

	var doc DocumentRecord
	err := row.Scan(&doc.ID, &doc.Kind, &doc.Content, &doc.Source, &doc.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("document not found: %s", id)
		}
		return nil, err
	}

	return &doc, nil
}

// ListDocuments retrieves documents, optionally filtered by kind
func (s *DocumentStore) ListDocuments(kind string, limit int) ([]*DocumentRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, kind, content, source, created_at
		FROM documents
	`
	args := []any{}
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		if err := rows.Scan(&doc.ID, &doc.Kind, &doc.Content, &doc.Source, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocument removes a document by ID
func (s *DocumentStore) DeleteDocument(id string) error {
	_, err := s.db.Exec("DELETE FROM documents WHERE id = ?", id)
	return err
}

// CountByKind returns document counts grouped by kind
func (s *DocumentStore) CountByKind() (map[string]int, error) {
	rows, err := s.db.Query("SELECT kind, COUNT(*) FROM documents GROUP BY kind")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[kind] = count
	}

	return counts, rows.Err()
}

// SaveEvent saves a calendar event to the store
func (s *DocumentStore) SaveEvent(event *EventRecord) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO events (id, name, start_at, location, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, event.ID, event.Name, event.StartAt, event.Location, event.CreatedAt)

	return err
}

// ListEvents retrieves all events ordered by start time
func (s *DocumentStore) ListEvents() ([]*EventRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, name, start_at, location, created_at
		FROM events
		ORDER BY start_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*EventRecord
	for rows.Next() {
		var event EventRecord
		if err := rows.Scan(&event.ID, &event.Name, &event.StartAt, &event.Location, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}

// GenerateID generates a unique identifier
func GenerateID() string {
	return uuid.New().String()
}
