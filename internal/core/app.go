package core

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/config"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/dircache"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/identity"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/manifest"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/progress"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/websocket"
)

// App holds the core components shared between the CLI commands and the
// status server.
type App struct {
	Config   *config.Config
	RunID    string
	Cache    *dircache.Cache
	Policy   identity.FallbackPolicy
	Progress *progress.Aggregator
	Hub      *websocket.Hub

	manifestDB *sql.DB
	Manifest   *manifest.Store // nil when the manifest is disabled
}

// New sets up and returns a new App instance: configuration, directory
// cache, progress aggregator, and (if enabled) the manifest database.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig is New with an injected configuration, for tests and
// embedding.
func NewWithConfig(cfg *config.Config) (*App, error) {
	provider := identity.NewStaticProvider(cfg.Identity.Domain)
	groups := append([]string{}, cfg.Generator.Departments...)
	groups = append(groups, cfg.Identity.FallbackOwner)

	app := &App{
		Config: cfg,
		RunID:  uuid.NewString(),
		Cache: dircache.New(provider, groups,
			time.Duration(cfg.CacheTTLSeconds)*time.Second),
		Policy: identity.FallbackPolicy{
			Mode:          cfg.Identity.Fallback,
			UmbrellaGroup: cfg.Identity.FallbackOwner,
		},
		Progress: progress.NewAggregator(),
		Hub:      websocket.NewHub(),
	}

	if cfg.Manifest.Enabled {
		db, err := manifest.InitDB(cfg.Manifest.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize manifest database: %w", err)
		}
		app.manifestDB = db
		app.Manifest = manifest.New(db)
	}

	logger.Get().Debug().Str("run_id", app.RunID).Msg("core application setup complete")
	return app, nil
}

// Close releases the application's resources.
func (a *App) Close() {
	if a.manifestDB != nil {
		a.manifestDB.Close()
	}
}
