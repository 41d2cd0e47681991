package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAsset(t *testing.T, root, family, name, contents string) {
	t.Helper()
	dir := filepath.Join(root, family)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(contents), 0o644))
}

func TestAppCompilesEnvironmentEndToEnd(t *testing.T) {
	catalogRoot := t.TempDir()
	writeAsset(t, catalogRoot, "decoder", "d1", `{"name":"d1","check":{"event.type":"syslog"},"normalize":{}}`)

	envPath := filepath.Join(t.TempDir(), "env.json")
	require.NoError(t, os.WriteFile(envPath, []byte(`{"decoders":["d1"]}`), 0o644))

	cfg, err := NewConfig(Config{
		Env:         envPath,
		CatalogKind: "file",
		CatalogRoot: catalogRoot,
	})
	require.NoError(t, err)

	a, logs := SetupAppTest(t, cfg)

	env, warnings, dotStr, err := a.Compile(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "env", env.Name)
	assert.Contains(t, dotStr, "digraph G {")
	assert.NotEmpty(t, logs.String())
}

func TestNewConfigRejectsMissingEnv(t *testing.T) {
	_, err := NewConfig(Config{CatalogKind: "file", CatalogRoot: "."})
	assert.Error(t, err)
}

func TestNewConfigRejectsMissingCatalogRoot(t *testing.T) {
	_, err := NewConfig(Config{Env: "env.json", CatalogKind: "file"})
	assert.Error(t, err)
}

func TestNewConfigRejectsMissingCatalogURL(t *testing.T) {
	_, err := NewConfig(Config{Env: "env.json", CatalogKind: "http"})
	assert.Error(t, err)
}
