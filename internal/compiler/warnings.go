package compiler

// Warning records a recoverable condition found while compiling an
// environment. A dangling parent reference is the only kind produced: a
// parents entry naming an asset that is not a node of the asset's own
// family graph is tolerated, and that edge is left out rather than
// treated as an error.
type Warning struct {
	Asset  string
	Parent string
}

func (w Warning) String() string {
	return "asset " + w.Asset + " declares parent " + w.Parent + " which is not a node in its family graph"
}
