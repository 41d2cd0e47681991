package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fetchEnvironmentJSON resolves cfg.Env to its raw JSON definition and a
// display name for the compiled Environment. In file mode, cfg.Env is a
// path on disk and the name is its base filename without extension. In
// http mode, cfg.Env is an environment name resolved against
// GET <CatalogURL>/environments/{name}.
func (a *App) fetchEnvironmentJSON(ctx context.Context, cfg *Config) (json.RawMessage, string, error) {
	if cfg.CatalogKind == "http" {
		return a.fetchEnvironmentHTTP(ctx, cfg)
	}

	raw, err := os.ReadFile(cfg.Env)
	if err != nil {
		return nil, "", fmt.Errorf("reading environment file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(cfg.Env), filepath.Ext(cfg.Env))
	return json.RawMessage(raw), name, nil
}
