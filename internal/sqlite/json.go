// JSONL record structures for the rolodex backend. These mirror the
// durable file format: books.jsonl keeps the book order, contacts.jsonl
// holds every contact tagged with its book and position.
package sqlite

// JSONL file names inside the data directory.
const (
	booksJSONL    = "books.jsonl"
	contactsJSONL = "contacts.jsonl"
)

// bookJSON represents a book in books.jsonl.
type bookJSON struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// contactJSON represents a contact in contacts.jsonl.
type contactJSON struct {
	Book        string `json:"book"`
	Position    int    `json:"position"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}
