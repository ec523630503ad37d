// Add command appends contacts to a book.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

var (
	addBook  string
	addCount string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add contacts to a book",
	Long: `Add appends a contact to a book. Fields can be given as flags, or
interactively: without field flags the command prompts for the eight
contact fields on stdin. --count repeats the interactive prompt.

A contact whose (first name, last name) pair already exists in the book
is rejected without changing the book.

Example:
  rolodex add --book Friends --first John --last Doe --city Boston
  rolodex add --book Friends --count 3`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addBook, "book", "", "book to add to (required)")
	addCmd.Flags().StringVar(&addCount, "count", "1", "number of contacts to prompt for")
	registerContactFlags(addCmd)
	_ = addCmd.MarkFlagRequired("book")
}

func runAdd(cmd *cobra.Command, args []string) error {
	// Count is user text; garbage is a user error, never a crash.
	count, err := strconv.Atoi(addCount)
	if err != nil || count < 1 {
		return fmt.Errorf("count %q must be a positive integer: %w", addCount, types.ErrInvalidInput)
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	bk, err := backend.GetBook(addBook)
	if err != nil {
		return reportSaved(err)
	}

	fields := changedContactFields(cmd)
	if len(fields) > 0 {
		if count != 1 {
			return fmt.Errorf("--count needs interactive mode, not field flags: %w", types.ErrInvalidInput)
		}
		c, err := types.ContactFromFields(fields)
		if err != nil {
			return err
		}
		saved, err := bk.Add(c)
		if err := reportSaved(err); err != nil {
			return err
		}
		fmt.Println("Contact saved:")
		fmt.Println(saved)
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	for i := 0; i < count; i++ {
		c, err := promptContact(reader, os.Stdout)
		if err != nil {
			return err
		}
		saved, err := bk.Add(c)
		if err := reportSaved(err); err != nil {
			return err
		}
		fmt.Println("Contact saved:")
		fmt.Println(saved)
	}
	return nil
}
