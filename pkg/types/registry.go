package types

import "errors"

// Registry is the top-level mapping of book names to Books, backed by a
// storage backend. Callers attach to a backend, access books by name,
// and detach when done.
type Registry interface {
	// GetBook returns the Book registered under name, creating an empty
	// one if none exists. Returns ErrRegistryDetached before Attach or
	// after Detach, and ErrInvalidName for an empty name.
	GetBook(name string) (Book, error)

	// ListBooks returns the known book names in the order they were
	// first created (load order for books read at Attach).
	ListBooks() ([]string, error)

	// Attach connects the Registry to the backend described by config
	// and loads all persisted books. Creates the DataDir if it does not
	// exist. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrRegistryDetached.
	Detach() error
}

// Book is an ordered, named collection of contacts. Contacts keep their
// insertion order until an explicit sort. Every mutating operation
// persists the whole registry before returning.
type Book interface {
	// Name returns the book name.
	Name() string

	// Add appends the contact if no contact with the same identity key
	// exists. Returns the persisted contact, or ErrDuplicateEntry with
	// no mutation.
	Add(c Contact) (Contact, error)

	// Edit applies a partial update to the first contact (in insertion
	// order) matching the key. Fields present in the map overwrite;
	// absent fields are untouched. Returns the updated contact, or
	// ErrNotFound. A key change that collides with another contact is
	// rejected with ErrDuplicateEntry.
	Edit(key Key, fields map[string]string) (Contact, error)

	// Delete removes the first contact matching the key in insertion
	// order. Returns ErrNotFound if absent.
	Delete(key Key) error

	// List returns all contacts in their current stored order.
	List() ([]Contact, error)

	// Search returns contacts whose city OR state equals the supplied
	// filter, case-insensitively. An empty filter contributes no
	// constraint; with both empty the result is empty.
	Search(city, state string) ([]Contact, error)

	// CountByCity maps each city, exact case as stored, to the number
	// of contacts with that city.
	CountByCity() (map[string]int, error)

	// SortByName stably sorts contacts by (first_name, last_name)
	// ascending and persists the new order.
	SortByName() error

	// SortByCity stably sorts contacts by city ascending and persists
	// the new order.
	SortByCity() error
}

// Standard errors. All are recoverable: callers report them and carry on.
var (
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrNotFound           = errors.New("not found")
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownField       = errors.New("unknown field")
	ErrInvalidName        = errors.New("invalid name")
	ErrRegistryDetached   = errors.New("registry is detached")
	ErrAlreadyAttached    = errors.New("registry is already attached")
)
