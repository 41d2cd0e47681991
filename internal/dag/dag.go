package dag

import (
	"fmt"
	"sort"

	"github.com/mkazlow/envbuilder/internal/asset"
)

// New creates a graph for the given family with a synthetic root node
// named rootName (the compiler passes "<family>Input"), holding rootAsset
// (no stages, no check).
func New(family, rootName string, rootAsset *asset.Asset) *Graph {
	g := &Graph{
		family:  family,
		root:    rootName,
		nodes:   make(map[string]*asset.Asset),
		edges:   make(map[string][]string),
		edgeSet: make(map[string]map[string]bool),
	}
	g.nodes[rootName] = rootAsset
	return g
}

// Family returns the asset family this graph was built for.
func (g *Graph) Family() string { return g.family }

// Root returns the synthetic root node's name.
func (g *Graph) Root() string { return g.root }

// AddNode inserts a into the graph under name. A duplicate name is an error.
func (g *Graph) AddNode(name string, a *asset.Asset) error {
	if _, ok := g.nodes[name]; ok {
		return fmt.Errorf("dag: duplicate node %q in family %q", name, g.family)
	}
	g.nodes[name] = a
	return nil
}

// HasNode reports whether name is a node in the graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Node returns the asset stored at name, if any.
func (g *Graph) Node(name string) (*asset.Asset, bool) {
	a, ok := g.nodes[name]
	return a, ok
}

// EdgesOf returns the ordered child names of parent, or nil if it has none.
func (g *Graph) EdgesOf(parent string) []string {
	return g.edges[parent]
}

// NodeNames returns every node name currently in the graph, in no
// particular order; callers needing a stable order (e.g. the DOT renderer)
// sort it themselves.
func (g *Graph) NodeNames() []string {
	names := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		names = append(names, n)
	}
	return names
}

// AddEdge records a parent -> child edge. parent must already be a node;
// child need not be yet — it is permitted to add the edge before the
// child node exists, and later graph consumers treat a child that never
// materializes as unreachable rather than as an error. Duplicate edges
// are idempotent. Introducing a cycle is refused and returns *CycleError.
func (g *Graph) AddEdge(parent, child string) error {
	if !g.HasNode(parent) {
		return fmt.Errorf("dag: parent node %q not found in family %q", parent, g.family)
	}

	if existing := g.edgeSet[parent]; existing != nil && existing[child] {
		return nil // idempotent
	}

	if parent == child {
		return &CycleError{Path: []string{parent, child}}
	}

	// Adding parent -> child closes a cycle iff child (already a node) can
	// already reach parent through existing edges.
	if g.HasNode(child) {
		if path := g.reachablePath(child, parent); path != nil {
			full := append([]string{parent}, path...)
			return &CycleError{Path: full}
		}
	}

	if g.edgeSet[parent] == nil {
		g.edgeSet[parent] = make(map[string]bool)
	}
	g.edgeSet[parent][child] = true
	g.edges[parent] = append(g.edges[parent], child)
	return nil
}

// reachablePath returns a path from -> ... -> to along existing edges, or
// nil if to is unreachable from. Children are visited in sorted order so
// the result is deterministic regardless of edge insertion order.
func (g *Graph) reachablePath(from, to string) []string {
	visited := make(map[string]bool)
	var path []string

	var dfs func(cur string) bool
	dfs = func(cur string) bool {
		if visited[cur] {
			return false
		}
		visited[cur] = true
		path = append(path, cur)
		if cur == to {
			return true
		}
		children := append([]string(nil), g.edges[cur]...)
		sort.Strings(children)
		for _, c := range children {
			if dfs(c) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}

	if dfs(from) {
		return path
	}
	return nil
}

// DetectCycles walks the whole graph and returns the first cycle found, or
// nil if the graph is acyclic. AddEdge already refuses to introduce a
// cycle, so a well-behaved caller never sees this fire; it exists as a
// defense-in-depth pass over a fully assembled graph.
func (g *Graph) DetectCycles() error {
	names := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		names = append(names, n)
	}
	sort.Strings(names)

	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n string) []string
	visit = func(n string) []string {
		if permanent[n] {
			return nil
		}
		if temporary[n] {
			return []string{n}
		}
		temporary[n] = true
		children := append([]string(nil), g.edges[n]...)
		sort.Strings(children)
		for _, c := range children {
			if path := visit(c); path != nil {
				return append([]string{n}, path...)
			}
		}
		delete(temporary, n)
		permanent[n] = true
		return nil
	}

	for _, n := range names {
		if path := visit(n); path != nil {
			return &CycleError{Path: path}
		}
	}
	return nil
}
