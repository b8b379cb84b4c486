package frontier

import (
	"fmt"
	"strings"

	"github.com/pkgscope/frontier/pkg/pkggraph"
)

// AmbiguousTargetError is returned by [ResolveTarget] when a substring
// matches zero or more than one package identifier. Matches carries the
// full candidate list so callers can show the user what collided before
// failing the run.
type AmbiguousTargetError struct {
	Substring string
	Matches   []string
}

// Error implements the error interface.
func (e *AmbiguousTargetError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("no package ID contains %q", e.Substring)
	}
	return fmt.Sprintf("package ID substring %q matches %d packages, want exactly one", e.Substring, len(e.Matches))
}

// ResolveTarget finds the unique package whose identifier contains the
// given substring. Matching is case-sensitive containment - not prefix or
// exact equality - so callers can pass any distinctive fragment of a long
// package ID.
//
// Zero matches or more than one match is fatal: ResolveTarget returns an
// *AmbiguousTargetError and never guesses a first match.
func ResolveTarget(g *pkggraph.Graph, substring string) (pkggraph.Node, error) {
	var candidates []string
	for _, id := range g.NodeIDs() {
		if strings.Contains(id, substring) {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) != 1 {
		return pkggraph.Node{}, &AmbiguousTargetError{Substring: substring, Matches: candidates}
	}

	n, _ := g.Node(candidates[0])
	return n, nil
}
