// Package lockfile builds package dependency graphs from resolved lockfile
// formats. Parsers read files that package managers have already fully
// resolved (Cargo.lock, go mod graph output), so no network access or
// version solving happens here - the output is the immutable graph the
// frontier analysis consumes.
package lockfile

import (
	"fmt"
	"path/filepath"

	"github.com/pkgscope/frontier/pkg/pkggraph"
)

// Parser reads a resolved lockfile into a package graph.
type Parser interface {
	// Parse reads the file at path and returns the dependency graph.
	Parse(path string) (*pkggraph.Graph, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the lockfile type identifier (e.g., "cargo-lock").
	Type() string
}

// Parsers returns every supported lockfile parser.
func Parsers() []Parser {
	return []Parser{
		NewCargoLock(),
		NewGoModGraph(nil),
	}
}

// Detect finds a parser that supports the given file path.
// Returns an error naming the file if no parser matches.
func Detect(path string, parsers ...Parser) (Parser, error) {
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unsupported lockfile: %s", name)
}
