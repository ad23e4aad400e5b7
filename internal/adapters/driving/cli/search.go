package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the book catalog",
	Long: `Searches the book catalog by title and author. Without a query,
lists the catalog's default browse selection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if services.NewSearchStream == nil {
		return errors.New("search not configured")
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	stream := services.NewSearchStream()
	defer stream.Close()

	stream.OnQueryChange(query)

	var state domain.SearchState
	select {
	case state = <-stream.Results():
	case <-time.After(30 * time.Second):
		return errors.New("search timed out")
	}

	if state.Unavailable {
		cmd.Println("Catalog unavailable, showing no results.")
	}

	if searchJSON {
		data, err := json.MarshalIndent(state.Books, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printBookTable(cmd, state.Books, savedSetForMarking(cmd.Context()))
	return nil
}

// savedSetForMarking fetches the saved set when signed in so results
// can be marked. Signed-out (or failing) lookups mark nothing.
func savedSetForMarking(ctx context.Context) domain.SavedBookSet {
	userID, err := currentUser()
	if err != nil || services.Library == nil {
		return domain.NewSavedBookSet(nil)
	}

	snaps, sub, err := services.Library.SubscribeSaved(ctx, userID)
	if err != nil {
		return domain.NewSavedBookSet(nil)
	}
	defer sub.Cancel()

	select {
	case set := <-snaps:
		return set
	case <-time.After(5 * time.Second):
		return domain.NewSavedBookSet(nil)
	}
}

func printBookTable(cmd *cobra.Command, books []domain.BookRecord, saved domain.SavedBookSet) {
	if len(books) == 0 {
		cmd.Println("No books found.")
		return
	}

	for i, book := range books {
		marker := " "
		if saved.Has(book.ID) {
			marker = "*"
		}
		cmd.Printf("%s [%d] %s\n", marker, i+1, book.Title)
		if line := book.AuthorLine(); line != "" {
			cmd.Printf("      by %s\n", line)
		}
		if book.RatingsCount > 0 {
			cmd.Printf("      %.1f (%d ratings)\n", book.AverageRating, book.RatingsCount)
		}
		cmd.Printf("      id: %s\n", book.ID)
	}
	cmd.Println()
	cmd.Println("* = on your shelf")
}
