package frontier

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkgscope/frontier/pkg/pkggraph"
)

// Report is the result of a frontier analysis.
//
// Frontier maps the display name of each dependency source - the From side
// of a boundary-crossing edge - to the "name version" strings of the
// packages it pulls across the workspace boundary. Entries within a list
// keep discovery order; two crossings sharing a source name accumulate
// into the same list.
//
// The shape is plain strings and maps so it serializes to JSON, TOML or
// templates without loss.
type Report struct {
	// TargetDependency is the "name version" display string of the package
	// the reverse transitive closure was computed for.
	TargetDependency string `json:"target_dependency" toml:"target_dependency"`

	// Frontier groups boundary-crossing dependencies by the package that
	// introduces them.
	Frontier map[string][]string `json:"frontier" toml:"frontier"`
}

// Sources returns the frontier keys in sorted order.
// Renderers iterate this instead of ranging the map so output is stable.
func (r *Report) Sources() []string {
	return slices.Sorted(maps.Keys(r.Frontier))
}

// Crossings returns the total number of boundary-crossing edges recorded.
func (r *Report) Crossings() int {
	total := 0
	for _, deps := range r.Frontier {
		total += len(deps)
	}
	return total
}

// Options tunes a single resolution. The zero value is ready to use.
type Options struct {
	// DebugLog, when non-nil, receives one line per boundary-crossing edge
	// labeling it "direct" (the edge ends at the target itself) or
	// "indirect". Diagnostic only - it never changes the report.
	DebugLog func(format string, args ...any)
}

// Resolve computes the workspace frontier for the given target package.
//
// It walks the ancestor closure of target backward through g, pruning with
// admit, then classifies every edge of the induced subgraph: an edge is a
// frontier crossing when exactly one endpoint is workspace-local
// (From.InWorkspace XOR To.InWorkspace). Crossings are grouped under the
// From package's display name; edges entirely inside the workspace or
// entirely external are never reported.
//
// The target itself gets no special casing - whether it is workspace-local
// only changes how its own incident edges classify.
//
// Resolve is a pure, single-pass computation over the supplied graph. Given
// the documented acyclicity precondition it cannot fail after the closure
// is obtained; the only error is an unknown target node.
func Resolve(g *pkggraph.Graph, target pkggraph.Node, admit pkggraph.AdmitFunc, opts Options) (*Report, error) {
	sub, err := g.AncestorClosure(target.ID, admit)
	if err != nil {
		return nil, fmt.Errorf("ancestor closure of %s: %w", target.ID, err)
	}

	report := &Report{
		TargetDependency: fmt.Sprintf("%s %s", target.Name, target.Version),
		Frontier:         make(map[string][]string),
	}

	for _, e := range sub.Edges() {
		from, _ := sub.Node(e.From)
		to, _ := sub.Node(e.To)

		// != implements the logical XOR on the workspace flags.
		if from.InWorkspace == to.InWorkspace {
			continue
		}

		source := DisplayName(from.Name)
		if opts.DebugLog != nil {
			kind := "indirect"
			if to.ID == target.ID {
				kind = "direct"
			}
			opts.DebugLog("%s: %s -> %s", kind, source, to.Name)
		}

		report.Frontier[source] = append(report.Frontier[source], fmt.Sprintf("%s %s", to.Name, to.Version))
	}

	return report, nil
}

// DisplayName normalizes a package name for display, replacing underscores
// with hyphens. Cosmetic only: identifier matching elsewhere always uses
// the raw ID.
func DisplayName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
