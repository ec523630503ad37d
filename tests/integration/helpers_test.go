// Package integration exercises the rolodex backend end to end, the
// way the CLI drives it: attach, mutate, detach, reattach.
package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mesh-intelligence/rolodex/internal/sqlite"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// setupRolodex creates a backend attached to an isolated temp directory.
// Each test gets its own registry instance for isolation.
func setupRolodex(t *testing.T) (*sqlite.Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := sqlite.NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

// attachAt attaches a fresh backend over an existing data directory.
func attachAt(t *testing.T, dir string) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach over %s: %v", dir, err)
	}
	t.Cleanup(func() { b.Detach() })
	return b
}

// mustBook retrieves (or creates) a book by name or fails the test.
func mustBook(t *testing.T, b *sqlite.Backend, name string) types.Book {
	t.Helper()
	bk, err := b.GetBook(name)
	if err != nil {
		t.Fatalf("GetBook(%q): %v", name, err)
	}
	return bk
}

// mustAddContact adds a contact or fails the test.
func mustAddContact(t *testing.T, bk types.Book, c types.Contact) {
	t.Helper()
	if _, err := bk.Add(c); err != nil {
		t.Fatalf("Add %s: %v", c.Key(), err)
	}
}

// mustList lists a book's contacts or fails the test.
func mustList(t *testing.T, bk types.Book) []types.Contact {
	t.Helper()
	contacts, err := bk.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return contacts
}

// readJSONLFile reads a JSONL file and returns its non-empty lines.
func readJSONLFile(t *testing.T, dir, filename string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// assertJSONLContains checks that a JSONL file contains a substring.
func assertJSONLContains(t *testing.T, dir, filename, substr string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q", filename, substr)
	}
}

// assertJSONLNotContains checks that a JSONL file does not contain a substring.
func assertJSONLNotContains(t *testing.T, dir, filename, substr string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("%s should not contain %q", filename, substr)
	}
}
