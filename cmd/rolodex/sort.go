// Sort command reorders a book (or all books) in place.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

var (
	sortBook string
	sortBy   string
	sortAll  bool
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort a book by name or by city",
	Long: `Sort stably reorders a book's contacts and persists the new order.
--by name sorts on (first name, last name); --by city sorts on city.

Example:
  rolodex sort --book Friends --by name
  rolodex sort --all --by city`,
	RunE: runSort,
}

func init() {
	sortCmd.Flags().StringVar(&sortBook, "book", "", "book to sort")
	sortCmd.Flags().StringVar(&sortBy, "by", "name", "sort key: name or city")
	sortCmd.Flags().BoolVar(&sortAll, "all", false, "sort every book")
}

func runSort(cmd *cobra.Command, args []string) error {
	if (sortBook == "") == !sortAll {
		return fmt.Errorf("exactly one of --book and --all is required: %w", types.ErrInvalidInput)
	}
	if sortBy != "name" && sortBy != "city" {
		return fmt.Errorf("sort key %q must be name or city: %w", sortBy, types.ErrInvalidInput)
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	names := []string{sortBook}
	if sortAll {
		if names, err = backend.ListBooks(); err != nil {
			return err
		}
	}

	for _, name := range names {
		bk, err := backend.GetBook(name)
		if err != nil {
			return reportSaved(err)
		}
		var sortErr error
		if sortBy == "name" {
			sortErr = bk.SortByName()
		} else {
			sortErr = bk.SortByCity()
		}
		if err := reportSaved(sortErr); err != nil {
			return err
		}
		fmt.Printf("Sorted book %q by %s\n", name, sortBy)
	}
	return nil
}
