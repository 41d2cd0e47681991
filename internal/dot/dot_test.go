package dot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazlow/envbuilder/internal/compiler"
)

func TestRenderProducesClusterPerFamilyAndFilterCluster(t *testing.T) {
	cat := newTestCatalog()
	cat.put(0, "d1", `{"name":"d1","check":{}}`)   // decoder
	cat.put(1, "f1", `{"name":"f1","check":{},"parents":["d1"]}`) // filter
	cat.put(0, "d2", `{"name":"d2","check":{},"parents":["d1"]}`)

	env, _, err := compiler.Compile(context.Background(), "myenv",
		[]byte(`{"filters":["f1"],"decoders":["d1","d2"]}`), cat, newTestRegistry())
	require.NoError(t, err)

	out := Render(env)

	assert.Contains(t, out, "digraph G {")
	assert.Contains(t, out, "subgraph cluster_decoders {")
	assert.Contains(t, out, "environment [label=\"myenv\"")
	assert.Contains(t, out, "subgraph cluster_filters_d1{")
	assert.Contains(t, out, "d1 -> f1 [ltail=d1 lhead=cluster_filters_d1];")
	assert.Contains(t, out, "f1 -> d2 [ltail=cluster_filters_d1 lhead=d2];")
	assert.Contains(t, out, "environment -> decodersInput;")
}
