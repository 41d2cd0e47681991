package app

import (
	"context"
	"fmt"
	"os"

	"github.com/mkazlow/envbuilder/internal/ctxlog"
)

// Run executes the main application logic: compile the configured
// environment, optionally write its DOT rendering to disk, optionally
// serve it over HTTP, and report a summary to outW.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("app.Run started")

	env, warnings, dotStr, err := a.Compile(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.DotPath != "" {
		if err := os.WriteFile(cfg.DotPath, []byte(dotStr), 0o644); err != nil {
			return fmt.Errorf("failed to write DOT document to %q: %w", cfg.DotPath, err)
		}
		a.logger.Info("DOT document written", "path", cfg.DotPath)
	}

	if cfg.ServePort > 0 {
		a.startServer(cfg.ServePort, dotStr)
		a.logger.Info("serving compiled environment", "port", cfg.ServePort)
		<-ctx.Done()
		if err := a.closeServer(); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.outW, "compiled environment %q: %d families, %d warnings\n",
		env.Name, len(env.FamilyOrder), len(warnings))

	a.logger.Debug("app.Run finished")
	return nil
}
