package compiler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkazlow/envbuilder/internal/catalog"
	"github.com/mkazlow/envbuilder/internal/expr"
	"github.com/mkazlow/envbuilder/internal/stage"
)

// memCatalog is a small in-memory Catalog fake keyed by (type, name),
// standing in for a real Catalog implementation in tests — idiomatic for
// a handful of methods, matching the teacher's own hand-written fakes
// rather than generated mocks.
type memCatalog struct {
	assets map[catalog.TypeCode]map[string]json.RawMessage
}

func newMemCatalog() *memCatalog {
	return &memCatalog{assets: map[catalog.TypeCode]map[string]json.RawMessage{
		catalog.Decoder: {},
		catalog.Filter:  {},
		catalog.Rule:    {},
		catalog.Output:  {},
	}}
}

func (c *memCatalog) put(typ catalog.TypeCode, name, rawJSON string) {
	c.assets[typ][name] = json.RawMessage(rawJSON)
}

func (c *memCatalog) GetAsset(ctx context.Context, typ catalog.TypeCode, name string) (json.RawMessage, error) {
	raw, ok := c.assets[typ][name]
	if !ok {
		return nil, fmt.Errorf("memCatalog: no %s asset named %q", typ, name)
	}
	return raw, nil
}

// fakeRegistry resolves "stage.check" to And("check", [Term]) wrapping the
// raw JSON, and each "stage.X" named in newFakeRegistry's extraStages to a
// plain Term; any other key is unknown — enough to exercise the compiler's
// orchestration without any real leaf semantics.
type fakeRegistry struct {
	known map[string]bool
}

func newFakeRegistry(extraStages ...string) *fakeRegistry {
	known := map[string]bool{"stage.check": true}
	for _, s := range extraStages {
		known["stage."+s] = true
	}
	return &fakeRegistry{known: known}
}

func (r *fakeRegistry) Get(key string) (stage.Builder, bool) {
	if !r.known[key] {
		return nil, false
	}
	return func(raw json.RawMessage) (*expr.Expression, error) {
		if key == "stage.check" {
			return expr.And("check", []*expr.Expression{expr.Term("check-leaf", raw)}), nil
		}
		return expr.Term(key, raw), nil
	}, true
}
