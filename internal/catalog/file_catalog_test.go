package catalog

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

func TestFileCatalogIndexesAndServesAssets(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "decoder", "d1", `{"name":"d1"}`)
	writeAsset(t, root, "filter", "f1", `{"name":"f1"}`)

	fc, err := NewFileCatalog(root)
	require.NoError(t, err)

	raw, err := fc.GetAsset(context.Background(), Decoder, "d1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"d1"}`, string(raw))

	raw, err = fc.GetAsset(context.Background(), Filter, "f1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"f1"}`, string(raw))
}

func TestFileCatalogMissingAssetIsCatalogFetch(t *testing.T) {
	root := t.TempDir()
	fc, err := NewFileCatalog(root)
	require.NoError(t, err)

	_, err = fc.GetAsset(context.Background(), Decoder, "missing")
	require.Error(t, err)
}
