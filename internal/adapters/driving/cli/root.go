// Package cli implements the command-line driving adapter. Commands
// talk to the core exclusively through the driving ports, injected by
// the composition root via SetServices.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driving"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging.
var verbose bool

// Services holds everything the commands need. NewSearchStream is a
// factory because every interactive session owns its own stream.
type Services struct {
	Library driving.LibraryService
	Reviews driving.ReviewService
	Profile driving.ProfileService
	Auth    driving.AuthService
	Catalog driven.CatalogClient

	NewSearchStream func() driving.SearchStream
	JoinRows        func(books []domain.BookRecord, saved domain.SavedBookSet) []domain.BookRow
}

var services Services

// SetServices injects the service implementations. Must be called
// before Execute.
func SetServices(s Services) {
	services = s
}

var rootCmd = &cobra.Command{
	Use:   "shelfwise",
	Short: "A personal book catalog in your terminal",
	Long: `Shelfwise keeps your saved books, reviews, and reading profile in
sync with the book catalog. Search the catalog, save books to your
shelf, and review what you've read.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// currentUser resolves the signed-in user id with a friendly error.
func currentUser() (string, error) {
	if services.Auth == nil {
		return "", errors.New("auth service not configured")
	}
	userID, err := services.Auth.CurrentUserID()
	if errors.Is(err, domain.ErrNotSignedIn) {
		return "", errors.New("not signed in, run 'shelfwise login' first")
	}
	return userID, err
}
