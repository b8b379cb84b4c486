package lockfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	apperrors "github.com/pkgscope/frontier/pkg/errors"
	"github.com/pkgscope/frontier/pkg/pkggraph"
)

// GoModGraph parses the output of `go mod graph` saved to a file.
//
// Each line is a "from to" pair of module@version tokens. The main module
// appears without a version suffix and becomes the sole workspace node;
// extra workspace prefixes mark multi-module workspaces where sibling
// modules are replaced onto the local disk but still carry versions.
type GoModGraph struct {
	workspacePrefixes []string
}

// NewGoModGraph creates a go mod graph parser. Modules whose path starts
// with any of the given prefixes are flagged as workspace-local in
// addition to the main module.
func NewGoModGraph(workspacePrefixes []string) *GoModGraph {
	return &GoModGraph{workspacePrefixes: workspacePrefixes}
}

func (p *GoModGraph) Type() string { return "gomod-graph" }

func (p *GoModGraph) Supports(name string) bool {
	return name == "go-mod-graph.txt" || strings.HasSuffix(name, ".modgraph")
}

// Parse reads a go mod graph dump and returns the module graph.
// Node IDs are the module@version tokens exactly as go prints them, so
// substring targeting matches what `go mod graph` shows.
func (p *GoModGraph) Parse(path string) (*pkggraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g := pkggraph.New()
	seen := make(map[string]bool)

	add := func(token string) error {
		if seen[token] {
			return nil
		}
		seen[token] = true
		modpath, _, _ := strings.Cut(token, "@")
		if err := apperrors.ValidateGoModulePath(modpath); err != nil {
			return err
		}
		return g.AddNode(p.node(token))
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: want \"from to\", got %q", path, line, text)
		}
		if err := add(fields[0]); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if err := add(fields[1]); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if err := g.AddEdge(pkggraph.Edge{From: fields[0], To: fields[1]}); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return g, nil
}

func (p *GoModGraph) node(token string) pkggraph.Node {
	name, version, versioned := strings.Cut(token, "@")
	n := pkggraph.Node{
		ID:      token,
		Name:    name,
		Version: version,
	}
	if !versioned {
		// The main module has no version suffix in go mod graph output.
		n.InWorkspace = true
		return n
	}
	for _, prefix := range p.workspacePrefixes {
		if strings.HasPrefix(name, prefix) {
			n.InWorkspace = true
			break
		}
	}
	return n
}
