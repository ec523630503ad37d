// Show command displays the contacts of a book.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showBook string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display all contacts in a book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		bk, err := backend.GetBook(showBook)
		if err != nil {
			return reportSaved(err)
		}

		contacts, err := bk.List()
		if err != nil {
			return err
		}
		if len(contacts) == 0 && !flagJSON {
			fmt.Printf("Book %q is empty\n", bk.Name())
			return nil
		}
		return printContacts(contacts)
	},
}

func init() {
	showCmd.Flags().StringVar(&showBook, "book", "", "book to display (required)")
	_ = showCmd.MarkFlagRequired("book")
}
