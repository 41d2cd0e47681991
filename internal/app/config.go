package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Env is the path to the environment JSON file (CatalogKind "file"), or
	// the environment name to resolve against the remote catalog service's
	// /environments/{name} endpoint (CatalogKind "http").
	Env string

	CatalogKind string // "file" or "http"
	CatalogRoot string // directory root for the file catalog
	CatalogURL  string // base URL for the HTTP catalog

	DotPath string // optional path to write the compiled graphviz DOT document

	LogFormat string
	LogLevel  string

	ServePort int // if > 0, serve /dot and /health on this port
}

// NewConfig validates cfg and returns a copy, failing fast on a
// configuration that cannot possibly produce a compiled environment.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Env == "" {
		return nil, errors.New("Env is a required configuration field and cannot be empty")
	}
	switch cfg.CatalogKind {
	case "", "file":
		if cfg.CatalogRoot == "" {
			return nil, errors.New("CatalogRoot is required when CatalogKind is \"file\"")
		}
	case "http":
		if cfg.CatalogURL == "" {
			return nil, errors.New("CatalogURL is required when CatalogKind is \"http\"")
		}
	default:
		return nil, errors.New("CatalogKind must be \"file\" or \"http\"")
	}

	return &cfg, nil
}
