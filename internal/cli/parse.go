package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/pkgscope/frontier/pkg/errors"
	"github.com/pkgscope/frontier/pkg/lockfile"
	"github.com/pkgscope/frontier/pkg/observability"
	"github.com/pkgscope/frontier/pkg/pkggraph"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output            string   // output file path (stdout if empty)
	lockfileType      string   // explicit lockfile type, overrides auto-detection
	workspacePrefixes []string // extra workspace module prefixes (go mod graph)
}

// parseCommand creates the parse command for building graphs from lockfiles.
func (c *CLI) parseCommand() *cobra.Command {
	opts := parseOpts{}

	cmd := &cobra.Command{
		Use:   "parse <lockfile>",
		Short: "Build a dependency graph from a resolved lockfile",
		Long: `Build a dependency graph from a resolved lockfile.

The lockfile type is auto-detected from the filename. The resulting graph
is written as JSON and consumed by 'analyze' and 'visualize'.

Examples:
  frontier parse Cargo.lock -o graph.json
  frontier parse go-mod-graph.txt --workspace-prefix github.com/acme/
  frontier parse deps.modgraph --type gomod-graph`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.lockfileType, "type", "t", "", "lockfile type (overrides filename detection)")
	cmd.Flags().StringSliceVar(&opts.workspacePrefixes, "workspace-prefix", nil, "module path prefixes to treat as workspace-local (go mod graph only)")

	return cmd
}

// runParse parses the lockfile and writes the resulting graph as JSON.
func runParse(ctx context.Context, opts *parseOpts, path string) error {
	logger := loggerFromContext(ctx)

	if err := apperrors.ValidateLockfileFilename(filepath.Base(path)); err != nil {
		return err
	}
	parser, err := selectParser(opts, path)
	if err != nil {
		return err
	}
	logger.Infof("Parsing %s (%s)", path, parser.Type())

	prog := newProgress(logger)
	observability.Analysis().OnParseStart(ctx, parser.Type(), path)
	start := time.Now()
	g, err := parser.Parse(path)
	if err != nil {
		observability.Analysis().OnParseComplete(ctx, parser.Type(), path, 0, time.Since(start), err)
		return err
	}
	observability.Analysis().OnParseComplete(ctx, parser.Type(), path, g.NodeCount(), time.Since(start), nil)
	prog.done(fmt.Sprintf("Parsed %d packages with %d dependencies", g.NodeCount(), g.EdgeCount()))

	if err := writeGraph(g, opts.output, logger); err != nil {
		return err
	}
	printGraphStats(g.NodeCount(), g.EdgeCount(), g.WorkspaceCount())
	return nil
}

// selectParser picks the lockfile parser, either by explicit type or by
// filename detection.
func selectParser(opts *parseOpts, path string) (lockfile.Parser, error) {
	parsers := []lockfile.Parser{
		lockfile.NewCargoLock(),
		lockfile.NewGoModGraph(opts.workspacePrefixes),
	}

	if opts.lockfileType == "" {
		return lockfile.Detect(path, parsers...)
	}

	var types []string
	for _, p := range parsers {
		if p.Type() == opts.lockfileType {
			return p, nil
		}
		types = append(types, p.Type())
	}
	return nil, fmt.Errorf("unknown lockfile type: %s (available: %s)", opts.lockfileType, strings.Join(types, ", "))
}

// writeGraph serializes g as JSON to the specified path (or stdout if empty).
// The logger is notified on success with the output path.
func writeGraph(g *pkggraph.Graph, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := pkggraph.WriteJSON(g, out); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote graph to %s", path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
