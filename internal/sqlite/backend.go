// Package sqlite implements the SQLite storage backend for rolodex.
// SQLite serves as the in-process query engine; the JSONL files in the
// data directory are the durable source of truth, loaded on Attach and
// rewritten atomically after every mutation.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/rolodex/internal/audit"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the ephemeral SQLite cache, removed on every Attach.
const dbFileName = "rolodex.db"

// Backend implements types.Registry using SQLite as the query engine
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	auditor  *audit.Logger
	books    map[string]*book
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{books: make(map[string]*book)}
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if it does not exist, rebuilds the SQLite cache from the
// JSONL files, and opens the audit log.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// The cache is rebuilt from JSONL; a stale database would shadow it.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return err
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	auditor, err := audit.New(filepath.Join(dataDir, audit.FileName))
	if err != nil {
		db.Close()
		return fmt.Errorf("open audit log: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.auditor = auditor
	b.attached = true
	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations return ErrRegistryDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.auditor.Close()

	b.attached = false
	b.books = make(map[string]*book)
	return nil
}

// GetBook returns the Book registered under name, creating an empty one
// if none exists. A newly created book is persisted immediately so the
// name survives a crash even before its first contact.
func (b *Backend) GetBook(name string) (types.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrRegistryDetached
	}
	if name == "" {
		return nil, fmt.Errorf("book name must not be empty: %w", types.ErrInvalidName)
	}

	if bk, ok := b.books[name]; ok {
		return bk, nil
	}

	var exists int
	err := b.db.QueryRow("SELECT 1 FROM books WHERE name = ?", name).Scan(&exists)
	if err == sql.ErrNoRows {
		if _, err := b.db.Exec(
			"INSERT INTO books (name, position) VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM books))",
			name); err != nil {
			return nil, fmt.Errorf("registering book %q: %w", name, err)
		}
		if err := b.persistAllLocked(); err != nil {
			b.auditor.Failure("create-book", name, err)
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("checking book %q: %w", name, err)
	}

	bk := &book{name: name, backend: b}
	b.books[name] = bk
	return bk, nil
}

// ListBooks returns the known book names in first-created order.
func (b *Backend) ListBooks() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrRegistryDetached
	}

	rows, err := b.db.Query("SELECT name FROM books ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning book name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// persistAllLocked rewrites both JSONL files from the current cache
// state. Either file failing leaves the prior durable state untouched
// (the write happens on a temp file before the atomic rename); the
// returned error wraps ErrPersistenceFailure so callers can keep the
// in-memory effect and warn instead of failing the operation.
// The caller must hold b.mu.
func (b *Backend) persistAllLocked() error {
	if err := b.persistBooksJSONL(); err != nil {
		return fmt.Errorf("%w: %v", types.ErrPersistenceFailure, err)
	}
	if err := b.persistContactsJSONL(); err != nil {
		return fmt.Errorf("%w: %v", types.ErrPersistenceFailure, err)
	}
	return nil
}

func (b *Backend) persistBooksJSONL() error {
	rows, err := b.db.Query("SELECT name, position FROM books ORDER BY position")
	if err != nil {
		return fmt.Errorf("reading books for JSONL: %w", err)
	}
	defer rows.Close()

	var records []bookJSON
	for rows.Next() {
		var rec bookJSON
		if err := rows.Scan(&rec.Name, &rec.Position); err != nil {
			return fmt.Errorf("scanning book for JSONL: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.dataDir, booksJSONL), records)
}

func (b *Backend) persistContactsJSONL() error {
	rows, err := b.db.Query(`
		SELECT c.book, c.position, c.first_name, c.last_name, c.address,
		       c.city, c.state, c.zip_code, c.phone_number, c.email
		FROM contacts c
		JOIN books b ON b.name = c.book
		ORDER BY b.position, c.position`)
	if err != nil {
		return fmt.Errorf("reading contacts for JSONL: %w", err)
	}
	defer rows.Close()

	var records []contactJSON
	for rows.Next() {
		var rec contactJSON
		if err := rows.Scan(&rec.Book, &rec.Position, &rec.FirstName, &rec.LastName,
			&rec.Address, &rec.City, &rec.State, &rec.ZipCode, &rec.PhoneNumber,
			&rec.Email); err != nil {
			return fmt.Errorf("scanning contact for JSONL: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.dataDir, contactsJSONL), records)
}
