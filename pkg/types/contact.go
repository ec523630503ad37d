package types

import (
	"fmt"
	"strings"
)

// Contact field names as they appear in the durable format and in field
// maps passed to ContactFromFields and Contact.Apply.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldAddress     = "address"
	FieldCity        = "city"
	FieldState       = "state"
	FieldZipCode     = "zip_code"
	FieldPhoneNumber = "phone_number"
	FieldEmail       = "email"
)

// FieldNames lists the contact fields in declared order. String renders
// fields in this order, and the CLI prompts for them in this order.
var FieldNames = []string{
	FieldFirstName,
	FieldLastName,
	FieldAddress,
	FieldCity,
	FieldState,
	FieldZipCode,
	FieldPhoneNumber,
	FieldEmail,
}

// Contact is a single address-book entry. All fields are opaque text;
// zip code and phone number are stored as entered, not parsed.
type Contact struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// Key is the identity of a contact within a book: the case-sensitive
// (first_name, last_name) pair. Two contacts in the same book never
// share a Key.
type Key struct {
	FirstName string
	LastName  string
}

// String renders the key as "First Last" for messages and audit entries.
func (k Key) String() string {
	return k.FirstName + " " + k.LastName
}

// Key returns the contact's identity key.
func (c Contact) Key() Key {
	return Key{FirstName: c.FirstName, LastName: c.LastName}
}

// fieldRef returns a pointer to the named field, or nil for unknown names.
func (c *Contact) fieldRef(name string) *string {
	switch name {
	case FieldFirstName:
		return &c.FirstName
	case FieldLastName:
		return &c.LastName
	case FieldAddress:
		return &c.Address
	case FieldCity:
		return &c.City
	case FieldState:
		return &c.State
	case FieldZipCode:
		return &c.ZipCode
	case FieldPhoneNumber:
		return &c.PhoneNumber
	case FieldEmail:
		return &c.Email
	default:
		return nil
	}
}

// Field returns the value of the named field.
// Returns ErrUnknownField for names outside FieldNames.
func (c Contact) Field(name string) (string, error) {
	ref := c.fieldRef(name)
	if ref == nil {
		return "", fmt.Errorf("field %q: %w", name, ErrUnknownField)
	}
	return *ref, nil
}

// Apply overwrites the fields named in the map and leaves the rest
// untouched. Returns ErrUnknownField (and applies nothing) if any key
// is not a contact field.
func (c *Contact) Apply(fields map[string]string) error {
	for name := range fields {
		if c.fieldRef(name) == nil {
			return fmt.Errorf("field %q: %w", name, ErrUnknownField)
		}
	}
	for name, value := range fields {
		*c.fieldRef(name) = value
	}
	return nil
}

// ContactFromFields builds a Contact from a field map. Unknown keys are
// rejected with ErrUnknownField; missing keys leave the field empty.
func ContactFromFields(fields map[string]string) (Contact, error) {
	var c Contact
	if err := c.Apply(fields); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// String renders the contact as "key: value" lines, one per field, in
// declared field order.
func (c Contact) String() string {
	var b strings.Builder
	for i, name := range FieldNames {
		if i > 0 {
			b.WriteByte('\n')
		}
		value, _ := c.Field(name)
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
	}
	return b.String()
}
