// Package stagebuiltins is a reference implementation of the stage.Registry
// port, shipped so the compiler can be exercised end to end by the CLI and
// by integration tests. It is explicitly a demo: real stage semantics
// (field predicates, transforms) are out of this repository's scope —
// every builder here only has to prove the wiring, not evaluate anything.
package stagebuiltins

import (
	"encoding/json"
	"fmt"

	"github.com/mkazlow/envbuilder/internal/expr"
	"github.com/mkazlow/envbuilder/internal/stage"
)

// Registry is an in-memory stage.Registry. Register panics on a duplicate
// key — a caller registering the same stage twice is a programmer error,
// not a runtime condition, matching the teacher's own registration idiom.
type Registry struct {
	builders map[string]stage.Builder
}

// New returns a Registry preloaded with the builtin stage builders below.
func New() *Registry {
	r := &Registry{builders: map[string]stage.Builder{}}
	r.Register("stage.check", buildCheck)
	r.Register("stage.normalize", buildPassthrough("normalize"))
	r.Register("stage.outputs", buildPassthrough("outputs"))
	r.Register("stage.metadata", buildPassthrough("metadata"))
	return r
}

// Register installs builder under key. It panics if key is already taken.
func (r *Registry) Register(key string, builder stage.Builder) {
	if _, exists := r.builders[key]; exists {
		panic(fmt.Sprintf("stagebuiltins: stage %q already registered", key))
	}
	r.builders[key] = builder
}

// Get implements stage.Registry.
func (r *Registry) Get(key string) (stage.Builder, bool) {
	b, ok := r.builders[key]
	return b, ok
}

// checkField is one element of the array form of a check stage: a
// {"field": ..., "value": ...} record. A check stage is either such an
// array or a plain object of field->expected-value pairs; both forms
// compile to the same conjunctive And("check", …).
type checkField struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// buildCheck compiles a check stage into And("check", terms…), one Term
// per field/value pair. For the array form the Terms follow array order;
// for the object form they follow Go map iteration order, so the object's
// own key order is not preserved.
func buildCheck(raw json.RawMessage) (*expr.Expression, error) {
	var fields []checkField
	if err := json.Unmarshal(raw, &fields); err == nil {
		ops := make([]*expr.Expression, 0, len(fields))
		for _, f := range fields {
			ops = append(ops, expr.Term(f.Field, f.Value))
		}
		return expr.And("check", ops), nil
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("stagebuiltins: check stage is not an object or array: %w", err)
	}
	ops := make([]*expr.Expression, 0, len(obj))
	for field, value := range obj {
		ops = append(ops, expr.Term(field, value))
	}
	return expr.And("check", ops), nil
}

// buildPassthrough returns a Builder that wraps the raw stage JSON in an
// opaque Term, named after the stage key, with no interpretation of its
// contents — a stand-in for whatever a real normalize/output/transform
// stage builder would compile to.
func buildPassthrough(name string) stage.Builder {
	return func(raw json.RawMessage) (*expr.Expression, error) {
		var payload any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("stagebuiltins: %s stage is not valid JSON: %w", name, err)
		}
		return expr.Term(name, payload), nil
	}
}
