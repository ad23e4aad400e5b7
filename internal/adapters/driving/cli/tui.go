package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/shelfwise/shelfwise-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Type to search the catalog as you go; results refresh after a short
pause in typing. Books on your shelf are marked, and shelf membership
updates live.

Controls:
  ↑/↓   - Navigate results
  Enter - Toggle the selected book on your shelf
  Esc   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if services.NewSearchStream == nil || services.Library == nil {
		return errors.New("tui not configured")
	}

	// Panic recovery so the terminal state survives with a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Signed-out browsing is allowed; the shelf column just stays empty.
	userID := ""
	if services.Auth != nil {
		userID, _ = services.Auth.CurrentUserID()
	}

	return tui.Run(tui.Config{
		Library: services.Library,
		Stream:  services.NewSearchStream(),
		UserID:  userID,
		Join:    services.JoinRows,
	})
}
