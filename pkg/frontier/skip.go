package frontier

import (
	"strings"

	"github.com/pkgscope/frontier/pkg/pkggraph"
)

// SkipPredicate builds the edge-admissibility predicate for a skip list.
// An edge is inadmissible when its To-node identifier contains any of the
// skip substrings; the traversal then neither crosses the edge nor visits
// anything reachable only through it.
//
// The predicate is evaluated once per edge during the backward walk rather
// than precomputed over the node set, because traversal order decides which
// edges are examined at all.
func SkipPredicate(skips []string) pkggraph.AdmitFunc {
	if len(skips) == 0 {
		return pkggraph.AdmitAll
	}
	return func(e pkggraph.Edge) bool {
		for _, s := range skips {
			if strings.Contains(e.To, s) {
				return false
			}
		}
		return true
	}
}
