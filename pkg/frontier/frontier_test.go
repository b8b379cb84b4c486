package frontier

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkgscope/frontier/pkg/pkggraph"
)

// testGraph builds the reference scenario:
// A(workspace) -> B(workspace) -> C(external) -> D(external, name "target").
func testGraph(t *testing.T) *pkggraph.Graph {
	t.Helper()
	g := pkggraph.New()
	nodes := []pkggraph.Node{
		{ID: "A 1.0.0 (workspace)", Name: "A", Version: "1.0.0", InWorkspace: true},
		{ID: "B 1.0.0 (workspace)", Name: "B", Version: "1.0.0", InWorkspace: true},
		{ID: "C 2.0.0 (registry)", Name: "C", Version: "2.0.0"},
		{ID: "D 3.1.4 (registry)", Name: "target", Version: "3.1.4"},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	edges := []pkggraph.Edge{
		{From: "A 1.0.0 (workspace)", To: "B 1.0.0 (workspace)"},
		{From: "B 1.0.0 (workspace)", To: "C 2.0.0 (registry)"},
		{From: "C 2.0.0 (registry)", To: "D 3.1.4 (registry)"},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e.From, e.To, err)
		}
	}
	return g
}

func mustResolveTarget(t *testing.T, g *pkggraph.Graph, substr string) pkggraph.Node {
	t.Helper()
	target, err := ResolveTarget(g, substr)
	if err != nil {
		t.Fatalf("ResolveTarget(%q): %v", substr, err)
	}
	return target
}

func TestResolve_ReportsWorkspaceBoundaryOnly(t *testing.T) {
	g := testGraph(t)
	target := mustResolveTarget(t, g, "D 3.1.4")

	report, err := Resolve(g, target, nil, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if report.TargetDependency != "target 3.1.4" {
		t.Errorf("TargetDependency = %q, want %q", report.TargetDependency, "target 3.1.4")
	}
	if len(report.Frontier) != 1 {
		t.Fatalf("Frontier has %d sources, want 1: %v", len(report.Frontier), report.Frontier)
	}
	deps, ok := report.Frontier["B"]
	if !ok {
		t.Fatalf("Frontier missing source B: %v", report.Frontier)
	}
	if len(deps) != 1 || deps[0] != "C 2.0.0" {
		t.Errorf("Frontier[B] = %v, want [\"C 2.0.0\"]", deps)
	}
}

func TestResolve_SkipListEmptiesFrontier(t *testing.T) {
	// Pruning edges into C cuts B and A from the closure; the only
	// remaining edge C->D is external on both sides.
	g := testGraph(t)
	target := mustResolveTarget(t, g, "D 3.1.4")

	report, err := Resolve(g, target, SkipPredicate([]string{"C"}), Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(report.Frontier) != 0 {
		t.Errorf("Frontier = %v, want empty", report.Frontier)
	}
}

func TestResolve_XORSymmetry(t *testing.T) {
	// Every reported crossing must have exactly one workspace endpoint,
	// whichever side it is on. external -> workspace counts too.
	g := pkggraph.New()
	nodes := []pkggraph.Node{
		{ID: "ext-top 1.0 (registry)", Name: "ext_top", Version: "1.0"},
		{ID: "ws-mid 0.1 (workspace)", Name: "ws_mid", Version: "0.1", InWorkspace: true},
		{ID: "leaf 2.0 (registry)", Name: "leaf", Version: "2.0"},
	}
	for _, n := range nodes {
		g.AddNode(n)
	}
	g.AddEdge(pkggraph.Edge{From: "ext-top 1.0 (registry)", To: "ws-mid 0.1 (workspace)"})
	g.AddEdge(pkggraph.Edge{From: "ws-mid 0.1 (workspace)", To: "leaf 2.0 (registry)"})

	target := mustResolveTarget(t, g, "leaf")
	report, err := Resolve(g, target, nil, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if len(report.Frontier["ws-mid"]) != 1 {
		t.Errorf("Frontier[ws-mid] = %v, want the workspace->external crossing", report.Frontier["ws-mid"])
	}
	if len(report.Frontier["ext-top"]) != 1 {
		t.Errorf("Frontier[ext-top] = %v, want the external->workspace crossing", report.Frontier["ext-top"])
	}
}

func TestResolve_AllExternalGraphReportsNothing(t *testing.T) {
	g := pkggraph.New()
	g.AddNode(pkggraph.Node{ID: "x 1.0", Name: "x", Version: "1.0"})
	g.AddNode(pkggraph.Node{ID: "y 1.0", Name: "y", Version: "1.0"})
	g.AddEdge(pkggraph.Edge{From: "x 1.0", To: "y 1.0"})

	target := mustResolveTarget(t, g, "y")
	report, err := Resolve(g, target, nil, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(report.Frontier) != 0 {
		t.Errorf("Frontier = %v, want empty for all-external graph", report.Frontier)
	}
}

func TestResolve_SharedSourceNameAccumulates(t *testing.T) {
	// One workspace package pulling two external deps groups both under
	// the same source key.
	g := pkggraph.New()
	nodes := []pkggraph.Node{
		{ID: "app 0.1 (workspace)", Name: "my_app", Version: "0.1", InWorkspace: true},
		{ID: "left 1.0 (registry)", Name: "left", Version: "1.0"},
		{ID: "right 2.0 (registry)", Name: "right", Version: "2.0"},
		{ID: "core 3.0 (registry)", Name: "core", Version: "3.0"},
	}
	for _, n := range nodes {
		g.AddNode(n)
	}
	g.AddEdge(pkggraph.Edge{From: "app 0.1 (workspace)", To: "left 1.0 (registry)"})
	g.AddEdge(pkggraph.Edge{From: "app 0.1 (workspace)", To: "right 2.0 (registry)"})
	g.AddEdge(pkggraph.Edge{From: "left 1.0 (registry)", To: "core 3.0 (registry)"})
	g.AddEdge(pkggraph.Edge{From: "right 2.0 (registry)", To: "core 3.0 (registry)"})

	target := mustResolveTarget(t, g, "core")
	report, err := Resolve(g, target, nil, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	deps := report.Frontier["my-app"]
	if len(deps) != 2 {
		t.Fatalf("Frontier[my-app] = %v, want both crossings grouped", deps)
	}
	if report.Crossings() != 2 {
		t.Errorf("Crossings() = %d, want 2", report.Crossings())
	}
}

func TestResolve_Deterministic(t *testing.T) {
	g := testGraph(t)
	target := mustResolveTarget(t, g, "D 3.1.4")

	first, err := Resolve(g, target, nil, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for range 20 {
		again, err := Resolve(g, target, nil, Options{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if len(again.Frontier) != len(first.Frontier) {
			t.Fatalf("frontier size changed between runs")
		}
		for k, v := range first.Frontier {
			w := again.Frontier[k]
			if len(v) != len(w) {
				t.Fatalf("Frontier[%s] changed between runs: %v vs %v", k, v, w)
			}
			for i := range v {
				if v[i] != w[i] {
					t.Fatalf("Frontier[%s] order changed: %v vs %v", k, v, w)
				}
			}
		}
	}
}

func TestResolve_DebugClassification(t *testing.T) {
	g := pkggraph.New()
	nodes := []pkggraph.Node{
		{ID: "a (workspace)", Name: "a", Version: "1", InWorkspace: true},
		{ID: "b (registry)", Name: "b", Version: "1"},
		{ID: "t (registry)", Name: "t", Version: "1"},
	}
	for _, n := range nodes {
		g.AddNode(n)
	}
	// a -> t is a direct crossing onto the target, a -> b -> t indirect.
	g.AddEdge(pkggraph.Edge{From: "a (workspace)", To: "t (registry)"})
	g.AddEdge(pkggraph.Edge{From: "a (workspace)", To: "b (registry)"})
	g.AddEdge(pkggraph.Edge{From: "b (registry)", To: "t (registry)"})

	target := mustResolveTarget(t, g, "t (registry)")

	var lines []string
	debug := Options{DebugLog: func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}}
	withDebug, err := Resolve(g, target, nil, debug)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	without, err := Resolve(g, target, nil, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	var direct, indirect int
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "direct:"):
			direct++
		case strings.HasPrefix(l, "indirect:"):
			indirect++
		}
	}
	if direct != 1 || indirect != 1 {
		t.Errorf("debug lines = %v, want 1 direct and 1 indirect", lines)
	}

	// Debug output must not change the report itself.
	if withDebug.Crossings() != without.Crossings() {
		t.Errorf("debug mode changed the report: %d vs %d crossings", withDebug.Crossings(), without.Crossings())
	}
}

func TestResolveTarget_UniqueMatch(t *testing.T) {
	g := testGraph(t)
	n, err := ResolveTarget(g, "C 2.0.0")
	if err != nil {
		t.Fatalf("ResolveTarget() error = %v", err)
	}
	if n.Name != "C" {
		t.Errorf("ResolveTarget() = %+v, want node C", n)
	}
}

func TestResolveTarget_NoMatch(t *testing.T) {
	g := testGraph(t)
	_, err := ResolveTarget(g, "nope")
	var ambErr *AmbiguousTargetError
	if !errors.As(err, &ambErr) {
		t.Fatalf("ResolveTarget() error = %v, want AmbiguousTargetError", err)
	}
	if len(ambErr.Matches) != 0 {
		t.Errorf("Matches = %v, want empty", ambErr.Matches)
	}
}

func TestResolveTarget_MultipleMatches(t *testing.T) {
	g := testGraph(t)
	_, err := ResolveTarget(g, "workspace")
	var ambErr *AmbiguousTargetError
	if !errors.As(err, &ambErr) {
		t.Fatalf("ResolveTarget() error = %v, want AmbiguousTargetError", err)
	}
	if len(ambErr.Matches) != 2 {
		t.Errorf("Matches = %v, want both workspace candidates", ambErr.Matches)
	}
}

func TestResolveTarget_CaseSensitive(t *testing.T) {
	g := testGraph(t)
	if _, err := ResolveTarget(g, "d 3.1.4"); err == nil {
		t.Error("ResolveTarget() matched case-insensitively, want case-sensitive containment")
	}
}

func TestSkipPredicate_EmptyAdmitsEverything(t *testing.T) {
	admit := SkipPredicate(nil)
	if !admit(pkggraph.Edge{From: "a", To: "b"}) {
		t.Error("empty skip list rejected an edge")
	}
}

func TestSkipPredicate_MatchesToSideOnly(t *testing.T) {
	admit := SkipPredicate([]string{"bad"})
	if admit(pkggraph.Edge{From: "good", To: "bad 1.0"}) {
		t.Error("edge into skipped package admitted")
	}
	if !admit(pkggraph.Edge{From: "bad 1.0", To: "good"}) {
		t.Error("skip list matched the From side, want To side only")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("my_cool_pkg"); got != "my-cool-pkg" {
		t.Errorf("DisplayName() = %q, want my-cool-pkg", got)
	}
	if got := DisplayName("plain"); got != "plain" {
		t.Errorf("DisplayName() = %q, want plain", got)
	}
}

func TestReport_SourcesSorted(t *testing.T) {
	r := &Report{Frontier: map[string][]string{"z": {"a 1"}, "a": {"b 2"}, "m": {"c 3"}}}
	got := r.Sources()
	want := []string{"a", "m", "z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sources() = %v, want %v", got, want)
		}
	}
}
