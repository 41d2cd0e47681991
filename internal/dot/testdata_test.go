package dot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkazlow/envbuilder/internal/catalog"
	"github.com/mkazlow/envbuilder/internal/expr"
	"github.com/mkazlow/envbuilder/internal/stage"
)

type testCatalog struct {
	assets map[catalog.TypeCode]map[string]json.RawMessage
}

func newTestCatalog() *testCatalog {
	return &testCatalog{assets: map[catalog.TypeCode]map[string]json.RawMessage{
		catalog.Decoder: {}, catalog.Filter: {}, catalog.Rule: {}, catalog.Output: {},
	}}
}

func (c *testCatalog) put(typ catalog.TypeCode, name, rawJSON string) {
	c.assets[typ][name] = json.RawMessage(rawJSON)
}

func (c *testCatalog) GetAsset(ctx context.Context, typ catalog.TypeCode, name string) (json.RawMessage, error) {
	raw, ok := c.assets[typ][name]
	if !ok {
		return nil, fmt.Errorf("testCatalog: no %s asset named %q", typ, name)
	}
	return raw, nil
}

type testRegistry struct{}

func newTestRegistry() *testRegistry { return &testRegistry{} }

func (r *testRegistry) Get(key string) (stage.Builder, bool) {
	if key != "stage.check" {
		return nil, false
	}
	return func(raw json.RawMessage) (*expr.Expression, error) {
		return expr.And("check", nil), nil
	}, true
}
