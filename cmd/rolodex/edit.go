// Edit command applies a partial update to a contact.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

var (
	editBook      string
	editFirstName string
	editLastName  string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a contact identified by first and last name",
	Long: `Edit updates the contact matching --match-first/--match-last. Only
fields given as flags change; the rest keep their values.

Example:
  rolodex edit --book Friends --match-first John --match-last Doe --city Seattle`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editBook, "book", "", "book containing the contact (required)")
	editCmd.Flags().StringVar(&editFirstName, "match-first", "", "first name of the contact to edit (required)")
	editCmd.Flags().StringVar(&editLastName, "match-last", "", "last name of the contact to edit (required)")
	registerContactFlags(editCmd)
	_ = editCmd.MarkFlagRequired("book")
	_ = editCmd.MarkFlagRequired("match-first")
	_ = editCmd.MarkFlagRequired("match-last")
}

func runEdit(cmd *cobra.Command, args []string) error {
	fields := changedContactFields(cmd)
	if len(fields) == 0 {
		return fmt.Errorf("no field flags given, nothing to change: %w", types.ErrInvalidInput)
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	bk, err := backend.GetBook(editBook)
	if err != nil {
		return reportSaved(err)
	}

	key := types.Key{FirstName: editFirstName, LastName: editLastName}
	updated, err := bk.Edit(key, fields)
	if err := reportSaved(err); err != nil {
		return err
	}

	fmt.Println("Contact updated:")
	fmt.Println(updated)
	return nil
}
