package pkggraph

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadJSON_RoundTrip(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "app 0.1.0 (workspace)", Name: "app", Version: "0.1.0", InWorkspace: true})
	g.AddNode(Node{ID: "serde 1.0.188 (registry)", Name: "serde", Version: "1.0.188"})
	g.AddEdge(Edge{From: "app 0.1.0 (workspace)", To: "serde 1.0.188 (registry)", Kind: "normal"})

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if got.NodeCount() != 2 || got.EdgeCount() != 1 {
		t.Fatalf("round trip: %d nodes, %d edges; want 2, 1", got.NodeCount(), got.EdgeCount())
	}
	n, ok := got.Node("app 0.1.0 (workspace)")
	if !ok {
		t.Fatal("workspace node missing after round trip")
	}
	if !n.InWorkspace || n.Name != "app" || n.Version != "0.1.0" {
		t.Errorf("node = %+v, want workspace app 0.1.0", n)
	}
	e := got.Edges()[0]
	if e.Kind != "normal" {
		t.Errorf("edge kind = %q, want normal", e.Kind)
	}
}

func TestExportImportJSON(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "app", Name: "app", InWorkspace: true})
	g.AddNode(Node{ID: "dep", Name: "dep", Version: "1.0.0"})
	g.AddEdge(Edge{From: "app", To: "dep"})

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if got.NodeCount() != 2 || got.EdgeCount() != 1 {
		t.Fatalf("round trip: %d nodes, %d edges; want 2, 1", got.NodeCount(), got.EdgeCount())
	}
}

func TestReadJSON_UnknownEdgeEndpoint(t *testing.T) {
	in := `{"nodes":[{"id":"a","name":"a"}],"edges":[{"from":"a","to":"ghost"}]}`
	if _, err := ReadJSON(strings.NewReader(in)); err == nil {
		t.Fatal("ReadJSON() error = nil, want unknown target error")
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{not json")); err == nil {
		t.Fatal("ReadJSON() error = nil, want decode error")
	}
}

func TestReadJSON_NameDefaultsToID(t *testing.T) {
	in := `{"nodes":[{"id":"lonely"}],"edges":[]}`
	g, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	n, _ := g.Node("lonely")
	if n.Name != "lonely" {
		t.Errorf("Name = %q, want ID fallback", n.Name)
	}
}
