// JSONL loading for startup. The whole load is transactional: either
// every readable record lands in the cache or the database stays empty.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
)

// loadAllJSONL reads books.jsonl and contacts.jsonl from dataDir and
// inserts the records into the SQLite cache. Duplicate identity keys
// within a book keep the first occurrence (INSERT OR IGNORE). Contacts
// whose book is missing from books.jsonl get their book registered at
// the end of the order, so no contact is orphaned.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	books, err := readJSONL[bookJSON](filepath.Join(dataDir, booksJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", booksJSONL, err)
	}
	contacts, err := readJSONL[contactJSON](filepath.Join(dataDir, contactsJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", contactsJSONL, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, bk := range books {
		if bk.Name == "" {
			continue
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO books (name, position) VALUES (?, ?)",
			bk.Name, bk.Position); err != nil {
			return fmt.Errorf("loading book %q: %w", bk.Name, err)
		}
	}

	for _, c := range contacts {
		if c.Book == "" {
			continue
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO books (name, position) VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM books))",
			c.Book); err != nil {
			return fmt.Errorf("registering book %q for contact: %w", c.Book, err)
		}
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO contacts
				(book, position, first_name, last_name, address, city, state, zip_code, phone_number, email)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.Book, c.Position, c.FirstName, c.LastName, c.Address,
			c.City, c.State, c.ZipCode, c.PhoneNumber, c.Email); err != nil {
			return fmt.Errorf("loading contact into %q: %w", c.Book, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}
