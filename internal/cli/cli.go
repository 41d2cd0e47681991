package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mkazlow/envbuilder/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("envbuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
envbuild - compiles a declarative environment into an expression tree.

Usage:
  envbuild [options] [ENV]

Arguments:
  ENV
    Path to the environment JSON file (-catalog=file), or the environment
    name to resolve against the remote catalog (-catalog=http).

Options:
`)
		flagSet.PrintDefaults()
	}

	envFlag := flagSet.String("env", "", "Path to the environment JSON file, or its name in http catalog mode.")
	catalogKindFlag := flagSet.String("catalog", "file", "Catalog backend. Options: 'file' or 'http'.")
	catalogRootFlag := flagSet.String("catalog-root", "catalog", "Directory root for the file catalog.")
	catalogURLFlag := flagSet.String("catalog-url", "", "Base URL for the HTTP catalog.")
	dotFlag := flagSet.String("dot", "", "Optional path to write the compiled graphviz DOT document.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	servePortFlag := flagSet.Int("serve-port", 0, "If > 0, serve the compiled DOT document and a liveness probe on this port.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	env := *envFlag
	if env == "" && flagSet.NArg() > 0 {
		env = flagSet.Arg(0)
	}
	slog.Debug("Environment argument determined.", "env", env)

	if env == "" {
		slog.Debug("No environment provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	catalogKind := strings.ToLower(*catalogKindFlag)
	if catalogKind != "file" && catalogKind != "http" {
		return nil, false, &ExitError{Code: 2, Message: "invalid catalog: must be 'file' or 'http'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Env:         env,
		CatalogKind: catalogKind,
		CatalogRoot: *catalogRootFlag,
		CatalogURL:  *catalogURLFlag,
		DotPath:     *dotFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		ServePort:   *servePortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
