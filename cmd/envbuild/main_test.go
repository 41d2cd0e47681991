package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_MissingEnv(t *testing.T) {
	t.Parallel()

	// No env argument at all should print usage and exit cleanly, not error.
	args := []string{}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_CompilesEnvironment(t *testing.T) {
	t.Parallel()

	catalogRoot := t.TempDir()
	decoderDir := filepath.Join(catalogRoot, "decoder")
	require.NoError(t, os.MkdirAll(decoderDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(decoderDir, "d1.json"),
		[]byte(`{"name":"d1","check":{"event.type":"syslog"},"normalize":{}}`), 0o644))

	envPath := filepath.Join(t.TempDir(), "env.json")
	require.NoError(t, os.WriteFile(envPath, []byte(`{"decoders":["d1"]}`), 0o644))

	out := &bytes.Buffer{}
	args := []string{"-env", envPath, "-catalog", "file", "-catalog-root", catalogRoot}

	err := run(out, args)

	require.NoError(t, err)
	require.Contains(t, out.String(), "compiled environment")
}
