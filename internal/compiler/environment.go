// Package compiler implements the Environment Compiler: it orchestrates
// asset loading via a Catalog, builds one graph per family, injects
// filters, and folds the graphs into a single expression tree.
package compiler

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mkazlow/envbuilder/internal/asset"
	"github.com/mkazlow/envbuilder/internal/catalog"
	"github.com/mkazlow/envbuilder/internal/cerr"
	"github.com/mkazlow/envbuilder/internal/ctxlog"
	"github.com/mkazlow/envbuilder/internal/dag"
	"github.com/mkazlow/envbuilder/internal/stage"
)

// family names recognized at the environment JSON's top level, in the
// fixed order they are processed and folded under the top-level Chain.
const (
	familyFilters  = "filters"
	familyDecoders = "decoders"
	familyRules    = "rules"
	familyOutputs  = "outputs"
)

var familyOrder = []string{familyDecoders, familyRules, familyOutputs}

func assetTypeForFamily(family string) asset.Type {
	switch family {
	case familyDecoders:
		return asset.TypeDecoder
	case familyRules:
		return asset.TypeRule
	case familyOutputs:
		return asset.TypeOutput
	default:
		panic("compiler: unknown family " + family)
	}
}

func catalogTypeForFamily(family string) catalog.TypeCode {
	switch family {
	case familyDecoders:
		return catalog.Decoder
	case familyRules:
		return catalog.Rule
	case familyOutputs:
		return catalog.Output
	default:
		panic("compiler: unknown family " + family)
	}
}

// Environment is the full compiled unit for a named configuration: every
// parsed asset, one graph per processed family, and the order those
// families were processed in (used to order the top-level Chain operands).
type Environment struct {
	Name        string
	Assets      map[string]*asset.Asset
	Graphs      map[string]*dag.Graph
	FamilyOrder []string
}

type envDefinition struct {
	Filters  []string `json:"filters,omitempty"`
	Decoders []string `json:"decoders,omitempty"`
	Rules    []string `json:"rules,omitempty"`
	Outputs  []string `json:"outputs,omitempty"`
}

// Compile builds an Environment named name from envJSON, fetching every
// referenced asset through cat and resolving stage expressions through
// reg. It returns any dangling-parent warnings alongside the result; the
// first hard error aborts the whole compilation.
func Compile(ctx context.Context, name string, envJSON json.RawMessage, cat catalog.Catalog, reg stage.Registry) (*Environment, []Warning, error) {
	log := ctxlog.FromContextOrDefault(ctx)
	log.Info("compiling environment", "name", name)

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(envJSON, &raw); err != nil {
		return nil, nil, cerr.EnvMalformed("environment definition is not a JSON object: " + err.Error())
	}
	for key := range raw {
		switch key {
		case familyFilters, familyDecoders, familyRules, familyOutputs:
		default:
			return nil, nil, cerr.EnvMalformed("unknown family " + key)
		}
	}

	env := &Environment{
		Name:   name,
		Assets: map[string]*asset.Asset{},
		Graphs: map[string]*dag.Graph{},
	}

	var warnings []Warning

	if filtersRaw, ok := raw[familyFilters]; ok {
		var names []string
		if err := json.Unmarshal(filtersRaw, &names); err != nil {
			return nil, nil, cerr.EnvMalformed("filters must be an array of strings")
		}
		for _, n := range names {
			a, err := fetchAndParse(ctx, cat, reg, catalog.Filter, asset.TypeFilter, n)
			if err != nil {
				return nil, nil, err
			}
			env.Assets[a.Name] = a
		}
	}

	for _, family := range familyOrder {
		famRaw, ok := raw[family]
		if !ok {
			continue
		}
		var names []string
		if err := json.Unmarshal(famRaw, &names); err != nil {
			return nil, nil, cerr.EnvMalformed(family + " must be an array of strings")
		}

		famType := assetTypeForFamily(family)
		typeCode := catalogTypeForFamily(family)
		rootName := family + "Input"
		rootAsset := &asset.Asset{Name: rootName, Type: famType}
		g := dag.New(family, rootName, rootAsset)

		parsed := make([]*asset.Asset, 0, len(names))
		for _, n := range names {
			a, err := fetchAndParse(ctx, cat, reg, typeCode, famType, n)
			if err != nil {
				return nil, nil, err
			}
			env.Assets[a.Name] = a
			if err := g.AddNode(a.Name, a); err != nil {
				return nil, nil, cerr.AssetMalformed(a.Name, err.Error())
			}
			parsed = append(parsed, a)
		}

		for _, a := range parsed {
			if len(a.Parents) == 0 {
				if err := g.AddEdge(rootName, a.Name); err != nil {
					return nil, nil, cycleOrBug(family, err)
				}
				continue
			}
			for _, parent := range a.Parents {
				if !g.HasNode(parent) {
					log.Warn("dangling parent reference", "asset", a.Name, "parent", parent, "family", family)
					warnings = append(warnings, Warning{Asset: a.Name, Parent: parent})
					continue
				}
				if err := g.AddEdge(parent, a.Name); err != nil {
					return nil, nil, cycleOrBug(family, err)
				}
			}
		}

		env.Graphs[family] = g
		env.FamilyOrder = append(env.FamilyOrder, family)
	}

	injectFilters(env)

	log.Debug("environment compiled", "name", name, "families", env.FamilyOrder, "warnings", len(warnings))
	return env, warnings, nil
}

func fetchAndParse(ctx context.Context, cat catalog.Catalog, reg stage.Registry, typeCode catalog.TypeCode, typ asset.Type, name string) (*asset.Asset, error) {
	raw, err := cat.GetAsset(ctx, typeCode, name)
	if err != nil {
		return nil, err
	}
	a, err := asset.Parse(raw, typ, reg)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func cycleOrBug(family string, err error) error {
	var cycleErr *dag.CycleError
	if e, ok := err.(*dag.CycleError); ok {
		cycleErr = e
		return cerr.CycleDetected(family, cycleErr.Path)
	}
	return fmt.Errorf("compiler: unexpected graph error in family %s: %w", family, err)
}

// injectFilters attaches every Filter asset's name to each parent it
// declares, for every family graph that parent is a node of. A filter may
// attach to parents across multiple families independently.
func injectFilters(env *Environment) {
	var filterNames []string
	for _, a := range env.Assets {
		if a.Type == asset.TypeFilter {
			filterNames = append(filterNames, a.Name)
		}
	}
	sort.Strings(filterNames)

	for _, name := range filterNames {
		filter := env.Assets[name]
		for _, parent := range filter.Parents {
			for _, family := range env.FamilyOrder {
				g := env.Graphs[family]
				if pa, ok := g.Node(parent); ok {
					pa.Filters = append(pa.Filters, filter.Name)
				}
			}
		}
	}
}
