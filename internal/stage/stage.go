// Package stage defines the Registry port consumed by the asset parser: a
// lookup from a stage key (e.g. "stage.check", "stage.normalize") to a builder function
// that turns that stage's raw JSON into an expr.Expression. This package
// owns only the port; stagebuiltins ships a reference implementation.
package stage

import (
	"encoding/json"

	"github.com/mkazlow/envbuilder/internal/expr"
)

// Builder compiles one stage's raw JSON fragment into an Expression. A
// builder's own failure is wrapped by the caller as cerr.StageBuild.
type Builder func(raw json.RawMessage) (*expr.Expression, error)

// Registry resolves a stage key to its Builder. The asset parser calls
// Get("stage.check") for the mandatory check stage, and Get("stage."+key)
// for every other top-level key — see internal/asset.
type Registry interface {
	Get(key string) (Builder, bool)
}
