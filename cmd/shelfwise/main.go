// Command shelfwise is the entry point: it assembles the driven
// adapters, the core services, and the CLI, then hands off to cobra.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shelfwise/shelfwise-cli/internal/adapters/driven/auth/local"
	"github.com/shelfwise/shelfwise-cli/internal/adapters/driven/blob/file"
	catalog "github.com/shelfwise/shelfwise-cli/internal/adapters/driven/catalog/http"
	configfile "github.com/shelfwise/shelfwise-cli/internal/adapters/driven/config/file"
	"github.com/shelfwise/shelfwise-cli/internal/adapters/driven/storage/sqlite"
	"github.com/shelfwise/shelfwise-cli/internal/adapters/driving/cli"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driving"
	"github.com/shelfwise/shelfwise-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	docs, err := sqlite.NewDocumentStore(config.GetString(driven.ConfigKeyDataDir))
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	defer docs.Close()

	blobs, err := file.NewBlobStore("")
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}

	books := catalog.NewClient(
		config.GetString(driven.ConfigKeyCatalogBaseURL),
		catalogToken(config),
	)

	provider := local.NewProvider(docs, config)

	library := services.NewLibraryService(docs, books)
	reviews := services.NewReviewService(docs)
	profile := services.NewProfileService(docs, blobs)
	auth := services.NewAuthService(provider, docs)

	debounce := time.Duration(config.GetInt(driven.ConfigKeyDebounceMillis)) * time.Millisecond
	limit := config.GetInt(driven.ConfigKeySearchLimit)

	cli.SetServices(cli.Services{
		Library: library,
		Reviews: reviews,
		Profile: profile,
		Auth:    auth,
		Catalog: books,
		NewSearchStream: func() driving.SearchStream {
			return services.NewSearchStream(books, debounce, limit)
		},
		JoinRows: services.AssembleRows,
	})

	cli.Execute()
	return nil
}

// catalogToken returns the configured catalog token, minting and
// persisting one on first run. The catalog accepts any stable value.
func catalogToken(config driven.ConfigStore) string {
	if token := config.GetString(driven.ConfigKeyCatalogToken); token != "" {
		return token
	}
	token := fmt.Sprintf("shelfwise-%d", time.Now().UnixNano())
	config.Set(driven.ConfigKeyCatalogToken, token)
	if err := config.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not persist catalog token: %v\n", err)
	}
	return token
}
