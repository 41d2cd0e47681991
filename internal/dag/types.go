package dag

import "github.com/mkazlow/envbuilder/internal/asset"

// Graph is a labeled DAG keyed by asset name, with a synthetic root node
// per family. Edges are maintained in insertion order so traversal during
// the fold reproduces the definition order of the family's asset list.
type Graph struct {
	family string
	root   string

	nodes map[string]*asset.Asset
	// edges maps a parent name to its ordered list of child names.
	edges map[string][]string
	// edgeSet dedupes edges so repeated AddEdge calls are idempotent.
	edgeSet map[string]map[string]bool
}

// CycleError reports a cycle found while adding an edge. Path lists the
// node names starting at the edge's parent, through its child, and back
// around to the parent (e.g. [b a b] for a refused b -> a).
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	s := "cycle detected: "
	for i, n := range e.Path {
		if i > 0 {
			s += " -> "
		}
		s += n
	}
	return s
}
