package pkggraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	Workspace bool   `json:"workspace,omitempty"`
}

type edgeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind,omitempty"`
}

// WriteJSON encodes the graph as JSON and writes it to w.
// Nodes and edges keep their insertion order so the file round-trips into
// an identical graph with [ReadJSON].
func WriteJSON(g *Graph, w io.Writer) error {
	out := graphJSON{
		Nodes: make([]nodeJSON, 0, g.NodeCount()),
		Edges: make([]edgeJSON, 0, g.EdgeCount()),
	}

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		out.Nodes = append(out.Nodes, nodeJSON{
			ID:        n.ID,
			Name:      n.Name,
			Version:   n.Version,
			Workspace: n.InWorkspace,
		})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edgeJSON{From: e.From, To: e.To, Kind: e.Kind})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ReadJSON decodes a JSON graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays. Each
// node needs an "id" and a "name"; "version" and "workspace" are optional.
// Each edge references node IDs through "from" and "to".
//
// Errors are wrapped with the node or edge that caused them; use errors.Is
// to check for the graph sentinel errors. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Graph, error) {
	var data graphJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := New()
	for _, n := range data.Nodes {
		name := n.Name
		if name == "" {
			name = n.ID
		}
		node := Node{ID: n.ID, Name: name, Version: n.Version, InWorkspace: n.Workspace}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(Edge{From: e.From, To: e.To, Kind: e.Kind}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
