package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkazlow/envbuilder/internal/cerr"
	"github.com/mkazlow/envbuilder/internal/fsutil"
)

// FileCatalog serves assets from a directory tree laid out as
// <root>/<family>/<name>.json, e.g. root/decoder/d1.json. It indexes the
// tree once at construction using the teacher's fsutil.FindFilesByExtension
// walker, then serves lookups from memory.
type FileCatalog struct {
	root  string
	index map[TypeCode]map[string]string // typ -> name -> path
}

// NewFileCatalog walks root and builds the family/name index from .json
// files under subdirectories named "decoder", "filter", "rule", and
// "output". A missing subdirectory is not an error, and files outside
// those subdirectories are ignored.
func NewFileCatalog(root string) (*FileCatalog, error) {
	files, err := fsutil.FindFilesByExtension(root, ".json")
	if err != nil {
		return nil, fmt.Errorf("catalog: indexing %s: %w", root, err)
	}

	fc := &FileCatalog{
		root: root,
		index: map[TypeCode]map[string]string{
			Decoder: {},
			Filter:  {},
			Rule:    {},
			Output:  {},
		},
	}

	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < 2 {
			continue
		}
		typ, ok := typeCodeFromDir(parts[0])
		if !ok {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		fc.index[typ][name] = path
	}

	return fc, nil
}

func typeCodeFromDir(dir string) (TypeCode, bool) {
	switch dir {
	case "decoder":
		return Decoder, true
	case "filter":
		return Filter, true
	case "rule":
		return Rule, true
	case "output":
		return Output, true
	default:
		return 0, false
	}
}

// GetAsset reads the indexed file for (typ, name). ctx is accepted to
// satisfy the Catalog port; file reads are not cancellable mid-call.
func (fc *FileCatalog) GetAsset(ctx context.Context, typ TypeCode, name string) (json.RawMessage, error) {
	select {
	case <-ctx.Done():
		return nil, cerr.CatalogFetch(name, ctx.Err())
	default:
	}

	byName, ok := fc.index[typ]
	if !ok {
		return nil, cerr.CatalogFetch(name, fmt.Errorf("unknown type code %v", typ))
	}
	path, ok := byName[name]
	if !ok {
		return nil, cerr.CatalogFetch(name, fmt.Errorf("no %s asset named %q under %s", typ, name, fc.root))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, cerr.CatalogFetch(name, err)
	}
	return json.RawMessage(raw), nil
}
