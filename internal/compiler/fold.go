package compiler

import (
	"fmt"

	"github.com/mkazlow/envbuilder/internal/expr"
)

// combinatorKind is the operator a family folds its branching points
// through: decoders pick the first matching alternative (Or), rules and
// outputs fan out to every match (Broadcast).
type combinatorKind int

const (
	combOr combinatorKind = iota
	combBroadcast
)

func combinatorFor(family string) combinatorKind {
	if family == familyDecoders {
		return combOr
	}
	return combBroadcast
}

func (k combinatorKind) build(name string, ops []*expr.Expression) *expr.Expression {
	if k == combOr {
		return expr.Or(name, ops)
	}
	return expr.Broadcast(name, ops)
}

// ToExpression folds the environment's family graphs into the top-level
// Chain(name, subs…) the compiler hands back to callers. Shared subtrees
// (nodes with more than one declared parent) are built once and wired into
// every parent that references them.
func (env *Environment) ToExpression() (*expr.Expression, error) {
	subs := make([]*expr.Expression, 0, len(env.FamilyOrder))
	for _, family := range env.FamilyOrder {
		sub, err := foldFamily(env, family)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return expr.Chain(env.Name, subs), nil
}

func foldFamily(env *Environment, family string) (*expr.Expression, error) {
	g := env.Graphs[family]
	comb := combinatorFor(family)
	shared := map[string]*expr.Expression{}

	var build func(name string) (*expr.Expression, error)
	build = func(name string) (*expr.Expression, error) {
		if cached, ok := shared[name]; ok {
			return cached, nil
		}

		a, ok := g.Node(name)
		if !ok {
			return nil, fmt.Errorf("compiler: node %q missing from family %q graph", name, family)
		}

		var childOps []*expr.Expression
		for _, childName := range g.EdgesOf(name) {
			if !g.HasNode(childName) {
				continue // dangling parent reference never materialized — unreachable, not an error
			}
			childExpr, err := build(childName)
			if err != nil {
				return nil, err
			}
			childOps = append(childOps, childExpr)
		}
		assetChildren := comb.build("children", childOps)

		own, err := a.ToExpression()
		if err != nil {
			return nil, err
		}

		var final *expr.Expression
		if len(a.Filters) > 0 {
			sortedFilters := a.SortedFilters()
			filterOps := make([]*expr.Expression, 0, len(sortedFilters)+1)
			for _, fname := range sortedFilters {
				filterAsset, ok := env.Assets[fname]
				if !ok {
					return nil, fmt.Errorf("compiler: filter %q attached to %q not found in asset map", fname, name)
				}
				fe, err := filterAsset.ToExpression()
				if err != nil {
					return nil, err
				}
				filterOps = append(filterOps, fe)
			}
			filterOps = append(filterOps, assetChildren)
			final, err = expr.Implication(name+"Node", own, expr.And("filters", filterOps))
		} else {
			final, err = expr.Implication(name+"Node", own, assetChildren)
		}
		if err != nil {
			return nil, err
		}

		if len(a.Parents) > 1 {
			shared[name] = final
		}
		return final, nil
	}

	rootName := g.Root()
	var rootOps []*expr.Expression
	for _, childName := range g.EdgesOf(rootName) {
		if !g.HasNode(childName) {
			continue
		}
		childExpr, err := build(childName)
		if err != nil {
			return nil, err
		}
		rootOps = append(rootOps, childExpr)
	}
	return comb.build(rootName, rootOps), nil
}
