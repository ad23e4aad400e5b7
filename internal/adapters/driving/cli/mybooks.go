package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

var mybooksCmd = &cobra.Command{
	Use:   "mybooks",
	Short: "Show the books on your shelf",
	Long: `Shows your saved books resolved against the catalog. Books whose
catalog record has gone away are dropped from the listing.`,
	RunE: runMyBooks,
}

var mybooksToggleCmd = &cobra.Command{
	Use:   "toggle [book-id]",
	Short: "Save a book to your shelf, or remove it",
	Args:  cobra.ExactArgs(1),
	RunE:  runMyBooksToggle,
}

func init() {
	mybooksCmd.AddCommand(mybooksToggleCmd)
	rootCmd.AddCommand(mybooksCmd)
}

func runMyBooks(cmd *cobra.Command, _ []string) error {
	if services.Library == nil {
		return errors.New("library service not configured")
	}

	userID, err := currentUser()
	if err != nil {
		return err
	}

	books, sub, err := services.Library.SubscribeMyBooks(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("subscribing to shelf: %w", err)
	}
	defer sub.Cancel()

	select {
	case resolved := <-books:
		if len(resolved) == 0 {
			cmd.Println("Your shelf is empty. Save books with 'shelfwise mybooks toggle <book-id>'.")
			return nil
		}
		for i, book := range resolved {
			cmd.Printf("[%d] %s\n", i+1, book.Title)
			if line := book.AuthorLine(); line != "" {
				cmd.Printf("    by %s\n", line)
			}
			cmd.Printf("    id: %s\n", book.ID)
		}
		return nil
	case <-time.After(30 * time.Second):
		return errors.New("timed out resolving shelf")
	}
}

func runMyBooksToggle(cmd *cobra.Command, args []string) error {
	if services.Library == nil || services.Catalog == nil {
		return errors.New("library service not configured")
	}

	userID, err := currentUser()
	if err != nil {
		return err
	}

	book, err := services.Catalog.GetByID(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no catalog book with id %q", args[0])
		}
		return fmt.Errorf("looking up book: %w", err)
	}

	if err := services.Library.ToggleSaved(cmd.Context(), userID, *book); err != nil {
		return fmt.Errorf("toggling %q: %w", book.Title, err)
	}

	cmd.Printf("Toggled %q on your shelf.\n", book.Title)
	return nil
}
