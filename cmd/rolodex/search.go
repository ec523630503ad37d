// Search command finds contacts by city or state.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

var (
	searchBook  string
	searchCity  string
	searchState string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search contacts by city or state",
	Long: `Search finds contacts whose city or state matches the given filter,
case-insensitively. At least one of --city and --state is required.
Without --book the search spans every book.

Example:
  rolodex search --city Boston
  rolodex search --state MA --book Friends`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchBook, "book", "", "restrict search to one book")
	searchCmd.Flags().StringVar(&searchCity, "city", "", "city to match")
	searchCmd.Flags().StringVar(&searchState, "state", "", "state to match")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchCity == "" && searchState == "" {
		return fmt.Errorf("at least one of --city and --state is required: %w", types.ErrInvalidInput)
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	names, err := searchScope(backend)
	if err != nil {
		return err
	}

	total := 0
	for _, name := range names {
		bk, err := backend.GetBook(name)
		if err != nil {
			return reportSaved(err)
		}
		matches, err := bk.Search(searchCity, searchState)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			continue
		}
		if !flagJSON {
			fmt.Printf("Book %q:\n", name)
		}
		if err := printContacts(matches); err != nil {
			return err
		}
		total += len(matches)
	}
	if total == 0 && !flagJSON {
		fmt.Println("No contacts found")
	}
	return nil
}

// searchScope returns the book names to search: the one named by
// --book, or all known books.
func searchScope(backend types.Registry) ([]string, error) {
	if searchBook != "" {
		return []string{searchBook}, nil
	}
	return backend.ListBooks()
}
