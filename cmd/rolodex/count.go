// Count command aggregates contacts per city.
package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var countBook string

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count contacts per city",
	Long: `Count prints the number of contacts in each city, exact case as
stored. Without --book the counts aggregate across every book.`,
	Args: cobra.NoArgs,
	RunE: runCount,
}

func init() {
	countCmd.Flags().StringVar(&countBook, "book", "", "restrict count to one book")
}

func runCount(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	names := []string{countBook}
	if countBook == "" {
		if names, err = backend.ListBooks(); err != nil {
			return err
		}
	}

	totals := make(map[string]int)
	for _, name := range names {
		bk, err := backend.GetBook(name)
		if err != nil {
			return reportSaved(err)
		}
		counts, err := bk.CountByCity()
		if err != nil {
			return err
		}
		for city, n := range counts {
			totals[city] += n
		}
	}

	if flagJSON {
		out, err := json.MarshalIndent(totals, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal counts: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	cities := make([]string, 0, len(totals))
	for city := range totals {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	for _, city := range cities {
		fmt.Printf("%s: %d\n", city, totals[city])
	}
	return nil
}
