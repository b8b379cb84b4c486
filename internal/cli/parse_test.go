package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pkgscope/frontier/pkg/pkggraph"
)

const testCargoLock = `version = 3

[[package]]
name = "my_app"
version = "0.1.0"
dependencies = ["serde"]

[[package]]
name = "serde"
version = "1.0.188"
source = "registry+https://github.com/rust-lang/crates.io-index"
`

func writeTestLockfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testContext() context.Context {
	return withLogger(context.Background(), log.New(io.Discard))
}

func TestSelectParser_Detect(t *testing.T) {
	opts := &parseOpts{}

	p, err := selectParser(opts, "/some/dir/Cargo.lock")
	if err != nil {
		t.Fatalf("selectParser error: %v", err)
	}
	if p.Type() != "cargo-lock" {
		t.Errorf("Type() = %s, want cargo-lock", p.Type())
	}
}

func TestSelectParser_ExplicitType(t *testing.T) {
	opts := &parseOpts{lockfileType: "gomod-graph"}

	p, err := selectParser(opts, "anything.txt")
	if err != nil {
		t.Fatalf("selectParser error: %v", err)
	}
	if p.Type() != "gomod-graph" {
		t.Errorf("Type() = %s, want gomod-graph", p.Type())
	}
}

func TestSelectParser_UnknownType(t *testing.T) {
	opts := &parseOpts{lockfileType: "poetry-lock"}

	if _, err := selectParser(opts, "poetry.lock"); err == nil {
		t.Error("selectParser should reject unknown lockfile types")
	}
}

func TestSelectParser_UnsupportedFile(t *testing.T) {
	opts := &parseOpts{}

	if _, err := selectParser(opts, "package-lock.json"); err == nil {
		t.Error("selectParser should reject unsupported lockfiles")
	}
}

func TestRunParse(t *testing.T) {
	lockPath := writeTestLockfile(t, "Cargo.lock", testCargoLock)
	outPath := filepath.Join(t.TempDir(), "graph.json")

	opts := &parseOpts{output: outPath}
	if err := runParse(testContext(), opts, lockPath); err != nil {
		t.Fatalf("runParse error: %v", err)
	}

	g, err := pkggraph.ImportJSON(outPath)
	if err != nil {
		t.Fatalf("ImportJSON error: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("graph has %d nodes, %d edges; want 2 and 1", g.NodeCount(), g.EdgeCount())
	}

	app, ok := g.Node("my_app 0.1.0 (workspace)")
	if !ok || !app.InWorkspace {
		t.Errorf("workspace member not flagged: %+v", app)
	}
}

func TestRunParse_HiddenLockfileRejected(t *testing.T) {
	lockPath := writeTestLockfile(t, ".cargo.lock", testCargoLock)

	opts := &parseOpts{lockfileType: "cargo-lock"}
	err := runParse(testContext(), opts, lockPath)
	if err == nil {
		t.Fatal("runParse should reject hidden lockfile names")
	}
	if !strings.Contains(err.Error(), "hidden") {
		t.Errorf("error = %v, want hidden file rejection", err)
	}
}

func TestRunParse_MissingFile(t *testing.T) {
	opts := &parseOpts{}
	err := runParse(testContext(), opts, filepath.Join(t.TempDir(), "Cargo.lock"))
	if err == nil {
		t.Error("runParse should fail on a missing lockfile")
	}
}

func TestOutputPath(t *testing.T) {
	target := pkggraph.Node{ID: "serde_json 1.0.107 (registry)", Name: "serde_json"}

	if got := outputPath("custom.svg", target, "svg"); got != "custom.svg" {
		t.Errorf("outputPath with flag = %q, want custom.svg", got)
	}
	if got := outputPath("", target, "svg"); got != "serde-json.svg" {
		t.Errorf("outputPath derived = %q, want serde-json.svg", got)
	}
	if got := outputPath("", pkggraph.Node{Name: "github.com/acme/tool"}, "dot"); strings.Contains(got, "/") {
		t.Errorf("outputPath should not contain path separators, got %q", got)
	}
}
