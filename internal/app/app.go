package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mkazlow/envbuilder/internal/catalog"
	"github.com/mkazlow/envbuilder/internal/compiler"
	"github.com/mkazlow/envbuilder/internal/ctxlog"
	"github.com/mkazlow/envbuilder/internal/dot"
	"github.com/mkazlow/envbuilder/internal/stage"
	"github.com/mkazlow/envbuilder/internal/stagebuiltins"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: the logger, the Catalog it was wired with, and the stage
// Registry it compiles against.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	catalog    catalog.Catalog
	registry   stage.Registry
	httpServer *http.Server
}

// NewApp constructs an App from cfg: a logger, a Catalog (file or HTTP
// depending on cfg.CatalogKind), and the stagebuiltins reference Registry.
func NewApp(outW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("logger configured successfully")

	var cat catalog.Catalog
	switch cfg.CatalogKind {
	case "http":
		cat = catalog.NewHTTPCatalog(cfg.CatalogURL)
	default:
		fc, err := catalog.NewFileCatalog(cfg.CatalogRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to index file catalog at %q: %w", cfg.CatalogRoot, err)
		}
		cat = fc
	}
	logger.Debug("catalog configured", "kind", cfg.CatalogKind)

	return &App{
		outW:     outW,
		logger:   logger,
		catalog:  cat,
		registry: stagebuiltins.New(),
	}, nil
}

// Logger returns the app's logger. Primarily for testing.
func (a *App) Logger() *slog.Logger { return a.logger }

// Compile fetches the named environment's definition and compiles it,
// returning the Environment, any dangling-parent warnings, and its
// graphviz DOT rendering.
func (a *App) Compile(ctx context.Context, cfg *Config) (*compiler.Environment, []compiler.Warning, string, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	envJSON, name, err := a.fetchEnvironmentJSON(ctx, cfg)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to load environment %q: %w", cfg.Env, err)
	}

	env, warnings, err := compiler.Compile(ctx, name, envJSON, a.catalog, a.registry)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to compile environment %q: %w", name, err)
	}
	for _, w := range warnings {
		a.logger.Warn(w.String())
	}

	return env, warnings, dot.Render(env), nil
}
