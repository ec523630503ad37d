// Shared helpers for rolodex CLI commands.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/sqlite"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend,
// and attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// contactFlags maps CLI field flags to contact field names. Shared by
// add and edit so both accept the same flag set.
var contactFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"first", types.FieldFirstName, "first name"},
	{"last", types.FieldLastName, "last name"},
	{"address", types.FieldAddress, "street address"},
	{"city", types.FieldCity, "city"},
	{"state", types.FieldState, "state"},
	{"zip", types.FieldZipCode, "zip code"},
	{"phone", types.FieldPhoneNumber, "phone number"},
	{"email", types.FieldEmail, "email address"},
}

// registerContactFlags adds the eight field flags to a command.
func registerContactFlags(cmd *cobra.Command) {
	for _, cf := range contactFlags {
		cmd.Flags().String(cf.flag, "", cf.usage)
	}
}

// changedContactFields collects the field flags the user actually set,
// keyed by contact field name.
func changedContactFields(cmd *cobra.Command) map[string]string {
	fields := make(map[string]string)
	for _, cf := range contactFlags {
		if cmd.Flags().Changed(cf.flag) {
			value, _ := cmd.Flags().GetString(cf.flag)
			fields[cf.field] = value
		}
	}
	return fields
}

// promptContact reads the eight contact fields interactively, in
// declared order, one prompt per field.
func promptContact(r *bufio.Reader, w io.Writer) (types.Contact, error) {
	fmt.Fprintln(w, "Enter contact details:")
	fields := make(map[string]string, len(types.FieldNames))
	for _, name := range types.FieldNames {
		fmt.Fprintf(w, "  %s: ", name)
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return types.Contact{}, fmt.Errorf("reading %s: %w", name, err)
		}
		fields[name] = strings.TrimRight(line, "\r\n")
		if err == io.EOF {
			break
		}
	}
	return types.ContactFromFields(fields)
}

// reportSaved handles the result of a mutating operation. A persistence
// failure is downgraded to a warning: the in-memory change took effect
// but may not survive a crash.
func reportSaved(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrPersistenceFailure) {
		fmt.Fprintln(os.Stderr, "Warning: change applied but not saved to disk:", err)
		return nil
	}
	return err
}

// printContacts renders contacts as text blocks or a JSON array,
// honoring the global --json flag.
func printContacts(contacts []types.Contact) error {
	if flagJSON {
		out, err := json.MarshalIndent(contacts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal contacts: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}
	for i, c := range contacts {
		if i > 0 {
			fmt.Println("---------------------------")
		}
		fmt.Println(c)
	}
	return nil
}
