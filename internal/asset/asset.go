// Package asset implements the parsed representation of one named
// processing unit — decoder, rule, output, or filter — and its conversion
// to an expr.Expression.
package asset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mkazlow/envbuilder/internal/cerr"
	"github.com/mkazlow/envbuilder/internal/expr"
	"github.com/mkazlow/envbuilder/internal/stage"
)

// Type is one of the four asset families.
type Type int

const (
	TypeDecoder Type = iota
	TypeRule
	TypeOutput
	TypeFilter
)

func (t Type) String() string {
	switch t {
	case TypeDecoder:
		return "decoder"
	case TypeRule:
		return "rule"
	case TypeOutput:
		return "output"
	case TypeFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// Asset is the parsed form of one asset definition.
type Asset struct {
	Name    string
	Type    Type
	Parents []string

	// Filters is populated later by the environment compiler during filter
	// injection, never during Parse.
	Filters []string

	Check  *expr.Expression
	Stages *expr.Expression // And("stages", …), in definition order
}

// orderedObject preserves the JSON object's key order, which json.Decoder
// loses by default when unmarshaling into a map. Parse relies on this to
// honor the "stages compile in definition order" invariant.
type orderedObject struct {
	keys   []string
	values map[string]json.RawMessage
}

func decodeOrdered(raw json.RawMessage) (*orderedObject, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("asset: definition is not a JSON object")
	}

	obj := &orderedObject{values: map[string]json.RawMessage{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("asset: non-string object key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		obj.keys = append(obj.keys, key)
		obj.values[key] = raw
	}
	return obj, nil
}

func (o *orderedObject) take(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Parse decodes raw into an Asset of the given type, resolving its check
// and stage expressions through reg. Key extraction order matches §4.3 of
// the spec this package implements: name, parents, metaData, check, then
// every remaining key in definition order becomes a stage.
func Parse(raw json.RawMessage, typ Type, reg stage.Registry) (*Asset, error) {
	obj, err := decodeOrdered(raw)
	if err != nil {
		return nil, cerr.AssetMalformed("", "invalid JSON object: "+err.Error())
	}

	a := &Asset{Type: typ}

	nameRaw, ok := obj.take("name")
	if !ok {
		return nil, cerr.AssetMalformed("", "missing name")
	}
	if err := json.Unmarshal(nameRaw, &a.Name); err != nil {
		return nil, cerr.AssetMalformed("", "name must be a string")
	}
	if a.Name == "" {
		return nil, cerr.AssetMalformed("", "missing name")
	}

	if parentsRaw, ok := obj.take("parents"); ok {
		var parents []string
		if err := json.Unmarshal(parentsRaw, &parents); err != nil {
			return nil, cerr.AssetMalformed(a.Name, "parents must be an array of strings")
		}
		a.Parents = parents
	}

	// metaData, if present, is consumed and discarded.
	obj.take("metaData")

	checkRaw, ok := obj.take("check")
	if !ok {
		return nil, cerr.AssetMalformed(a.Name, "missing check")
	}
	checkBuilder, ok := reg.Get("stage.check")
	if !ok {
		return nil, cerr.StageUnknown(a.Name, "stage.check")
	}
	checkExpr, err := checkBuilder(checkRaw)
	if err != nil {
		return nil, cerr.StageBuild(a.Name, "stage.check", err)
	}
	a.Check = checkExpr

	var stageOperands []*expr.Expression
	for _, key := range obj.keys {
		stageKey := "stage." + key
		builder, ok := reg.Get(stageKey)
		if !ok {
			return nil, cerr.StageUnknown(a.Name, stageKey)
		}
		e, err := builder(obj.values[key])
		if err != nil {
			return nil, cerr.StageBuild(a.Name, stageKey, err)
		}
		stageOperands = append(stageOperands, e)
	}
	a.Stages = expr.And("stages", stageOperands)

	return a, nil
}

// ToExpression returns the asset's own compiled form, per its type: a
// decoder/rule/output is Implication(name, check, stages); a filter is
// just its check's own operands folded as an And, discarding its stages.
func (a *Asset) ToExpression() (*expr.Expression, error) {
	switch a.Type {
	case TypeDecoder, TypeRule, TypeOutput:
		return expr.Implication(a.Name, a.Check, a.Stages)
	case TypeFilter:
		return expr.And(a.Name, a.Check.Operands), nil
	default:
		return nil, cerr.UnknownAssetType(a.Name)
	}
}

// SortedFilters returns a.Filters sorted by name, the deterministic order
// the fold requires when appending filter expressions under an
// And("filters", …) node.
func (a *Asset) SortedFilters() []string {
	out := append([]string(nil), a.Filters...)
	sort.Strings(out)
	return out
}
