package stagebuiltins

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazlow/envbuilder/internal/expr"
)

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	r := New()
	assert.Panics(t, func() {
		r.Register("stage.check", buildCheck)
	})
}

func TestGetUnknownStageReturnsFalse(t *testing.T) {
	r := New()
	_, ok := r.Get("stage.nope")
	assert.False(t, ok)
}

func TestBuildCheckFromObject(t *testing.T) {
	r := New()
	build, ok := r.Get("stage.check")
	require.True(t, ok)

	e, err := build(json.RawMessage(`{"event.type":"syslog"}`))
	require.NoError(t, err)
	assert.Equal(t, expr.KindAnd, e.Kind)
	require.Len(t, e.Operands, 1)
	assert.Equal(t, "event.type", e.Operands[0].Name)
}

func TestBuildCheckFromArray(t *testing.T) {
	r := New()
	build, ok := r.Get("stage.check")
	require.True(t, ok)

	e, err := build(json.RawMessage(`[{"field":"a","value":1},{"field":"b","value":2}]`))
	require.NoError(t, err)
	require.Len(t, e.Operands, 2)
	assert.Equal(t, "a", e.Operands[0].Name)
	assert.Equal(t, "b", e.Operands[1].Name)
}

func TestPassthroughWrapsPayload(t *testing.T) {
	r := New()
	build, ok := r.Get("stage.normalize")
	require.True(t, ok)

	e, err := build(json.RawMessage(`{"field":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, expr.KindTerm, e.Kind)
	assert.Equal(t, "normalize", e.Name)
}
