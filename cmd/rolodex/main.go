// Package main provides the rolodex CLI, a local-first contact book.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the CLI exit code: user errors (bad input,
// missing contact, duplicate) exit 1, everything else exits 2.
func exitCode(err error) int {
	for _, userErr := range []error{
		types.ErrDuplicateEntry,
		types.ErrNotFound,
		types.ErrInvalidInput,
		types.ErrUnknownField,
		types.ErrInvalidName,
	} {
		if errors.Is(err, userErr) {
			return exitUserError
		}
	}
	return exitSysError
}
