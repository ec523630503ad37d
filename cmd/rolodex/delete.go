// Delete command removes a contact from a book.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

var (
	deleteBook      string
	deleteFirstName string
	deleteLastName  string
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a contact identified by first and last name",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		bk, err := backend.GetBook(deleteBook)
		if err != nil {
			return reportSaved(err)
		}

		key := types.Key{FirstName: deleteFirstName, LastName: deleteLastName}
		if err := reportSaved(bk.Delete(key)); err != nil {
			return err
		}

		fmt.Printf("Deleted %q from book %q\n", key, bk.Name())
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteBook, "book", "", "book containing the contact (required)")
	deleteCmd.Flags().StringVar(&deleteFirstName, "first", "", "first name of the contact (required)")
	deleteCmd.Flags().StringVar(&deleteLastName, "last", "", "last name of the contact (required)")
	_ = deleteCmd.MarkFlagRequired("book")
	_ = deleteCmd.MarkFlagRequired("first")
	_ = deleteCmd.MarkFlagRequired("last")
}
