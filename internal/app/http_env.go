package app

import (
	"context"
	"encoding/json"
	"fmt"

	"resty.dev/v3"
)

// fetchEnvironmentHTTP resolves an environment name against the remote
// catalog service's /environments/{name} endpoint. This sits alongside the
// Catalog port rather than inside it — the Catalog contract (spec.md §6)
// only covers individual assets, not whole environment definitions.
func (a *App) fetchEnvironmentHTTP(ctx context.Context, cfg *Config) (json.RawMessage, string, error) {
	client := resty.New()
	defer client.Close()

	url := fmt.Sprintf("%s/environments/%s", cfg.CatalogURL, cfg.Env)
	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("fetching environment %q: %w", cfg.Env, err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("catalog service returned %s for environment %q", resp.Status(), cfg.Env)
	}

	return json.RawMessage(resp.Bytes()), cfg.Env, nil
}
