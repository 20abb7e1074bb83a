package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/kylasweb/IOC-Spinwheel/internal/catalog"
	"github.com/kylasweb/IOC-Spinwheel/internal/config"
	"github.com/kylasweb/IOC-Spinwheel/internal/event"
	"github.com/kylasweb/IOC-Spinwheel/internal/validation"
)

// InitializeCatalog builds the catalog store from CATALOG_PATH, or from the
// built-in wheel when no path is configured
func InitializeCatalog(cfg *config.Config, publisher event.Publisher) (*catalog.Store, error) {
	seed := catalog.DefaultSeed()
	source := CatalogSourceBuiltin

	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath, validation.NewSchemaValidator())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
		}
		seed = loaded
		source = cfg.CatalogPath
	}

	store, err := catalog.NewStore(seed, publisher)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"source", source,
		"prizes", len(seed.Prizes),
		"rewards", len(seed.Rewards),
		"odds", seed.Config.Odds)
	return store, nil
}
