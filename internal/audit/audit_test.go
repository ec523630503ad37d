package audit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func TestLoggerWritesEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	l, err := New(path)
	require.NoError(t, err)

	c := types.Contact{FirstName: "John", LastName: "Doe", City: "Boston"}
	l.Added("Friends", c)
	l.DuplicateRejected("Friends", c.Key())
	l.NotFound("delete", "Friends", types.Key{FirstName: "No", LastName: "Body"})
	l.Failure("add", "Friends", errors.New("disk full"))
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)

	assert.Contains(t, out, "contact added")
	assert.Contains(t, out, "duplicate entry rejected")
	assert.Contains(t, out, "contact not found")
	assert.Contains(t, out, "operation failed")
	assert.Contains(t, out, `"book":"Friends"`)
	assert.Contains(t, out, `"contact":"John Doe"`)
	assert.Contains(t, out, "disk full")

	// Every entry carries a timestamp, severity, and event ID.
	assert.Contains(t, lines[0], `"ts"`)
	assert.Contains(t, lines[0], `"level":"info"`)
	assert.Contains(t, lines[0], `"event_id"`)
	assert.Contains(t, lines[1], `"level":"warn"`)
	assert.Contains(t, lines[3], `"level":"error"`)
}

func TestLoggerAppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	l1, err := New(path)
	require.NoError(t, err)
	l1.Added("Friends", types.Contact{FirstName: "John", LastName: "Doe"})
	l1.Close()

	l2, err := New(path)
	require.NoError(t, err)
	l2.Deleted("Friends", types.Contact{FirstName: "John", LastName: "Doe"})
	l2.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2, "reopening must append, not truncate")
}

func TestNopLoggerIsSilent(t *testing.T) {
	l := Nop()
	l.Added("Friends", types.Contact{FirstName: "John", LastName: "Doe"})
	l.Failure("add", "Friends", errors.New("ignored"))
	l.Close()
}
