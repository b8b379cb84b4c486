package lockfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/pkgscope/frontier/pkg/errors"
	"github.com/pkgscope/frontier/pkg/pkggraph"
)

// workspaceSource is the display source for packages without a registry
// source in the lockfile, i.e. workspace members.
const workspaceSource = "workspace"

// CargoLock parses Cargo.lock files.
//
// Cargo.lock lists every resolved package as a [[package]] entry. Entries
// with a "source" field were fetched from a registry or git; entries
// without one are members of the local workspace. That distinction is what
// drives the workspace flag on graph nodes.
type CargoLock struct{}

// NewCargoLock creates a Cargo.lock parser.
func NewCargoLock() *CargoLock { return &CargoLock{} }

func (c *CargoLock) Type() string              { return "cargo-lock" }
func (c *CargoLock) Supports(name string) bool { return strings.EqualFold(name, "cargo.lock") }

type cargoLockFile struct {
	Version  int            `toml:"version"`
	Packages []cargoPackage `toml:"package"`
}

type cargoPackage struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Dependencies []string `toml:"dependencies"`
}

// Parse reads a Cargo.lock and returns the full resolved graph.
//
// Node IDs follow the cargo package-ID shape "name version (source)" so
// that substring targeting works against the same strings users see in
// cargo's own output. Dependency entries resolve by bare name when the
// name is unique in the lockfile, or by "name version" when cargo had to
// disambiguate multiple versions.
func (c *CargoLock) Parse(path string) (*pkggraph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lock cargoLockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	g := pkggraph.New()

	// First pass: nodes plus lookup tables for dependency resolution.
	byName := make(map[string][]string)        // name -> node IDs
	byNameVersion := make(map[string]string)   // "name version" -> node ID
	ids := make([]string, len(lock.Packages))  // parallel to lock.Packages
	for i, p := range lock.Packages {
		if err := apperrors.ValidateCratesPackageName(p.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		id := cargoID(p)
		ids[i] = id
		node := pkggraph.Node{
			ID:          id,
			Name:        p.Name,
			Version:     p.Version,
			InWorkspace: p.Source == "",
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("package %s: %w", id, err)
		}
		byName[p.Name] = append(byName[p.Name], id)
		byNameVersion[p.Name+" "+p.Version] = id
	}

	// Second pass: edges.
	for i, p := range lock.Packages {
		for _, dep := range p.Dependencies {
			to, err := resolveCargoDep(dep, byName, byNameVersion)
			if err != nil {
				return nil, fmt.Errorf("package %s: %w", ids[i], err)
			}
			if err := g.AddEdge(pkggraph.Edge{From: ids[i], To: to}); err != nil {
				return nil, fmt.Errorf("edge %s -> %s: %w", ids[i], to, err)
			}
		}
	}

	return g, nil
}

// cargoID builds the "name version (source)" identifier for a package.
func cargoID(p cargoPackage) string {
	source := p.Source
	if source == "" {
		source = workspaceSource
	}
	return fmt.Sprintf("%s %s (%s)", p.Name, p.Version, source)
}

// resolveCargoDep maps a lockfile dependency entry to a node ID.
// Entries are either "name", "name version", or "name version (source)".
func resolveCargoDep(dep string, byName map[string][]string, byNameVersion map[string]string) (string, error) {
	fields := strings.Fields(dep)
	switch {
	case len(fields) >= 2:
		key := fields[0] + " " + fields[1]
		if id, ok := byNameVersion[key]; ok {
			return id, nil
		}
		return "", fmt.Errorf("dependency %q not found in lockfile", dep)
	case len(fields) == 1:
		candidates := byName[fields[0]]
		if len(candidates) == 1 {
			return candidates[0], nil
		}
		if len(candidates) == 0 {
			return "", fmt.Errorf("dependency %q not found in lockfile", dep)
		}
		return "", fmt.Errorf("dependency %q is ambiguous (%d versions)", dep, len(candidates))
	default:
		return "", fmt.Errorf("empty dependency entry")
	}
}
