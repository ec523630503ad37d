package sqlite

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// book implements types.Book for a single named collection. All state
// lives in the backend's SQLite cache; every mutation rewrites the
// JSONL snapshot before returning.
type book struct {
	name    string
	backend *Backend
}

const contactColumns = "first_name, last_name, address, city, state, zip_code, phone_number, email"

// Name returns the book name.
func (bk *book) Name() string {
	return bk.name
}

// Add appends the contact unless its identity key is already present.
// The in-memory effect of a successful add is kept even when the
// snapshot write fails; the returned error then wraps
// ErrPersistenceFailure and the caller decides how loudly to warn.
func (bk *book) Add(c types.Contact) (types.Contact, error) {
	b := bk.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.Contact{}, types.ErrRegistryDetached
	}

	key := c.Key()
	exists, err := bk.keyExists(key)
	if err != nil {
		b.auditor.Failure("add", bk.name, err)
		return types.Contact{}, err
	}
	if exists {
		b.auditor.DuplicateRejected(bk.name, key)
		return types.Contact{}, fmt.Errorf("contact %q in book %q: %w", key, bk.name, types.ErrDuplicateEntry)
	}

	_, err = b.db.Exec(`
		INSERT INTO contacts (book, position, `+contactColumns+`)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM contacts WHERE book = ?), ?, ?, ?, ?, ?, ?, ?, ?)`,
		bk.name, bk.name, c.FirstName, c.LastName, c.Address, c.City,
		c.State, c.ZipCode, c.PhoneNumber, c.Email)
	if err != nil {
		b.auditor.Failure("add", bk.name, err)
		return types.Contact{}, fmt.Errorf("inserting contact: %w", err)
	}

	b.auditor.Added(bk.name, c)
	if err := b.persistAllLocked(); err != nil {
		b.auditor.Failure("add", bk.name, err)
		return c, err
	}
	return c, nil
}

// Edit applies a partial update to the first contact matching key in
// insertion order. Fields named in the map overwrite; the rest stay.
func (bk *book) Edit(key types.Key, fields map[string]string) (types.Contact, error) {
	b := bk.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.Contact{}, types.ErrRegistryDetached
	}

	c, pos, err := bk.firstMatch(key)
	if err != nil {
		if err == sql.ErrNoRows {
			b.auditor.NotFound("edit", bk.name, key)
			return types.Contact{}, fmt.Errorf("contact %q in book %q: %w", key, bk.name, types.ErrNotFound)
		}
		b.auditor.Failure("edit", bk.name, err)
		return types.Contact{}, err
	}

	if err := c.Apply(fields); err != nil {
		return types.Contact{}, err
	}

	// An edit may rename the contact; the new key must stay unique.
	if newKey := c.Key(); newKey != key {
		exists, err := bk.keyExists(newKey)
		if err != nil {
			b.auditor.Failure("edit", bk.name, err)
			return types.Contact{}, err
		}
		if exists {
			b.auditor.DuplicateRejected(bk.name, newKey)
			return types.Contact{}, fmt.Errorf("contact %q in book %q: %w", newKey, bk.name, types.ErrDuplicateEntry)
		}
	}

	_, err = b.db.Exec(`
		UPDATE contacts SET first_name = ?, last_name = ?, address = ?, city = ?,
			state = ?, zip_code = ?, phone_number = ?, email = ?
		WHERE book = ? AND position = ?`,
		c.FirstName, c.LastName, c.Address, c.City, c.State, c.ZipCode,
		c.PhoneNumber, c.Email, bk.name, pos)
	if err != nil {
		b.auditor.Failure("edit", bk.name, err)
		return types.Contact{}, fmt.Errorf("updating contact: %w", err)
	}

	b.auditor.Edited(bk.name, c)
	if err := b.persistAllLocked(); err != nil {
		b.auditor.Failure("edit", bk.name, err)
		return c, err
	}
	return c, nil
}

// Delete removes the first contact matching key in insertion order.
func (bk *book) Delete(key types.Key) error {
	b := bk.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrRegistryDetached
	}

	c, pos, err := bk.firstMatch(key)
	if err != nil {
		if err == sql.ErrNoRows {
			b.auditor.NotFound("delete", bk.name, key)
			return fmt.Errorf("contact %q in book %q: %w", key, bk.name, types.ErrNotFound)
		}
		b.auditor.Failure("delete", bk.name, err)
		return err
	}

	if _, err := b.db.Exec(
		"DELETE FROM contacts WHERE book = ? AND position = ?", bk.name, pos); err != nil {
		b.auditor.Failure("delete", bk.name, err)
		return fmt.Errorf("deleting contact: %w", err)
	}

	b.auditor.Deleted(bk.name, c)
	if err := b.persistAllLocked(); err != nil {
		b.auditor.Failure("delete", bk.name, err)
		return err
	}
	return nil
}

// List returns all contacts in their current stored order.
func (bk *book) List() ([]types.Contact, error) {
	b := bk.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrRegistryDetached
	}
	contacts, _, err := bk.allOrdered()
	return contacts, err
}

// Search returns contacts whose city or state equals the corresponding
// filter, compared case-insensitively. An empty filter contributes no
// constraint; with neither supplied the result is empty, never all.
func (bk *book) Search(city, state string) ([]types.Contact, error) {
	b := bk.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrRegistryDetached
	}
	if city == "" && state == "" {
		return []types.Contact{}, nil
	}

	query := "SELECT " + contactColumns + " FROM contacts WHERE book = ? AND ("
	args := []any{bk.name}
	if city != "" {
		query += "LOWER(city) = LOWER(?)"
		args = append(args, city)
	}
	if state != "" {
		if city != "" {
			query += " OR "
		}
		query += "LOWER(state) = LOWER(?)"
		args = append(args, state)
	}
	query += ") ORDER BY position"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching contacts: %w", err)
	}
	defer rows.Close()

	results := []types.Contact{}
	for rows.Next() {
		var c types.Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// CountByCity maps each city, exact case as stored, to its contact
// count. No normalization: "Boston" and "boston" are distinct keys.
func (bk *book) CountByCity() (map[string]int, error) {
	b := bk.backend
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrRegistryDetached
	}

	rows, err := b.db.Query(
		"SELECT city, COUNT(*) FROM contacts WHERE book = ? GROUP BY city", bk.name)
	if err != nil {
		return nil, fmt.Errorf("counting by city: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var city string
		var n int
		if err := rows.Scan(&city, &n); err != nil {
			return nil, fmt.Errorf("scanning city count: %w", err)
		}
		counts[city] = n
	}
	return counts, rows.Err()
}

// SortByName stably sorts the book by (first_name, last_name) ascending
// and persists the new order.
func (bk *book) SortByName() error {
	return bk.sortWith(func(a, b types.Contact) bool {
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.LastName < b.LastName
	})
}

// SortByCity stably sorts the book by city ascending and persists the
// new order.
func (bk *book) SortByCity() error {
	return bk.sortWith(func(a, b types.Contact) bool {
		return a.City < b.City
	})
}

// sortWith reorders the book with a stable sort on less, rewrites the
// position column, and persists the snapshot.
func (bk *book) sortWith(less func(a, b types.Contact) bool) error {
	b := bk.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrRegistryDetached
	}

	contacts, positions, err := bk.allOrdered()
	if err != nil {
		b.auditor.Failure("sort", bk.name, err)
		return err
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return less(contacts[i], contacts[j])
	})

	// Reuse the existing position values so the per-book sequence stays
	// dense regardless of prior deletes.
	sort.Ints(positions)
	for i, c := range contacts {
		if _, err := b.db.Exec(
			"UPDATE contacts SET position = ? WHERE book = ? AND first_name = ? AND last_name = ?",
			positions[i], bk.name, c.FirstName, c.LastName); err != nil {
			b.auditor.Failure("sort", bk.name, err)
			return fmt.Errorf("reordering contact: %w", err)
		}
	}

	if err := b.persistAllLocked(); err != nil {
		b.auditor.Failure("sort", bk.name, err)
		return err
	}
	return nil
}

// keyExists reports whether a contact with the given key is present.
// The caller must hold b.mu.
func (bk *book) keyExists(key types.Key) (bool, error) {
	var one int
	err := bk.backend.db.QueryRow(
		"SELECT 1 FROM contacts WHERE book = ? AND first_name = ? AND last_name = ?",
		bk.name, key.FirstName, key.LastName).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking contact %q: %w", key, err)
	}
	return true, nil
}

// firstMatch returns the first contact matching key in insertion order
// together with its position. Returns sql.ErrNoRows when absent.
// The caller must hold b.mu.
func (bk *book) firstMatch(key types.Key) (types.Contact, int, error) {
	var c types.Contact
	var pos int
	row := bk.backend.db.QueryRow(`
		SELECT position, `+contactColumns+` FROM contacts
		WHERE book = ? AND first_name = ? AND last_name = ?
		ORDER BY position LIMIT 1`,
		bk.name, key.FirstName, key.LastName)
	err := row.Scan(&pos, &c.FirstName, &c.LastName, &c.Address, &c.City,
		&c.State, &c.ZipCode, &c.PhoneNumber, &c.Email)
	if err != nil {
		return types.Contact{}, 0, err
	}
	return c, pos, nil
}

// allOrdered returns the book's contacts and their positions, both in
// stored order. The caller must hold b.mu.
func (bk *book) allOrdered() ([]types.Contact, []int, error) {
	rows, err := bk.backend.db.Query(
		"SELECT position, "+contactColumns+" FROM contacts WHERE book = ? ORDER BY position",
		bk.name)
	if err != nil {
		return nil, nil, fmt.Errorf("reading contacts: %w", err)
	}
	defer rows.Close()

	contacts := []types.Contact{}
	var positions []int
	for rows.Next() {
		var c types.Contact
		var pos int
		if err := rows.Scan(&pos, &c.FirstName, &c.LastName, &c.Address, &c.City,
			&c.State, &c.ZipCode, &c.PhoneNumber, &c.Email); err != nil {
			return nil, nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, c)
		positions = append(positions, pos)
	}
	return contacts, positions, rows.Err()
}

// scanContact scans a contact row selected with contactColumns.
func scanContact(rows *sql.Rows, c *types.Contact) error {
	if err := rows.Scan(&c.FirstName, &c.LastName, &c.Address, &c.City,
		&c.State, &c.ZipCode, &c.PhoneNumber, &c.Email); err != nil {
		return fmt.Errorf("scanning contact: %w", err)
	}
	return nil
}
