// Book management commands: create and list named contact books.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage contact books",
}

var bookCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a contact book",
	Long: `Create registers an empty contact book under the given name.
Creating a book that already exists is a no-op.

Example:
  rolodex book create Friends`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		bk, err := backend.GetBook(args[0])
		if err != nil {
			return reportSaved(err)
		}
		fmt.Printf("Book %q ready\n", bk.Name())
		return nil
	},
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List book names in creation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		names, err := backend.ListBooks()
		if err != nil {
			return err
		}

		if flagJSON {
			out, err := json.MarshalIndent(names, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal book names: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	bookCmd.AddCommand(bookCreateCmd)
	bookCmd.AddCommand(bookListCmd)
}
