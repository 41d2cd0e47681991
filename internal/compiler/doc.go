// Package compiler orchestrates the environment build: Catalog-driven asset
// loading, per-family graph construction, filter injection, and the fold
// that produces the top-level expression tree.
package compiler
