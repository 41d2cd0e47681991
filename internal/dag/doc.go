// Package dag implements the labeled per-family graph the environment
// compiler assembles assets into: a synthetic root, ordered parent-to-child
// edges, and cycle detection with a reported path.
package dag
