package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkgscope/frontier/pkg/frontier"
	"github.com/pkgscope/frontier/pkg/pkggraph"
	"github.com/pkgscope/frontier/pkg/render"
)

// visualizeOpts holds the command-line flags for the visualize command.
type visualizeOpts struct {
	skips  []string // substrings pruning the traversal
	output string   // output file path
	dotOut bool     // emit DOT source instead of SVG
}

// visualizeCommand creates the visualize command rendering ancestor subgraphs.
func (c *CLI) visualizeCommand() *cobra.Command {
	opts := visualizeOpts{}

	cmd := &cobra.Command{
		Use:   "visualize <graph.json> <package-id>",
		Short: "Render the ancestor subgraph of a target package as SVG",
		Long: `Render the ancestor subgraph of a target package as SVG.

The subgraph contains every package from which the target is reachable.
Workspace packages are filled, and edges that cross the workspace boundary
are drawn bold red, so the frontier reported by 'analyze' is visible at a
glance.

Examples:
  frontier visualize graph.json serde -o frontier.svg
  frontier visualize graph.json serde --dot -o frontier.dot`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVisualize(cmd.Context(), &opts, args[0], args[1])
		},
	}

	cmd.Flags().StringArrayVar(&opts.skips, "skip", nil, "prune packages whose ID contains this substring (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <package>.svg)")
	cmd.Flags().BoolVar(&opts.dotOut, "dot", false, "write Graphviz DOT source instead of SVG")

	return cmd
}

// runVisualize computes the ancestor subgraph and renders it.
func (c *CLI) runVisualize(ctx context.Context, opts *visualizeOpts, graphPath, packageID string) error {
	logger := loggerFromContext(ctx)

	g, err := pkggraph.ImportJSON(graphPath)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", graphPath, err)
	}

	target, err := resolveTarget(ctx, g, packageID, false)
	if err != nil {
		return err
	}

	sub, err := g.AncestorClosure(target.ID, frontier.SkipPredicate(opts.skips))
	if err != nil {
		return err
	}
	logger.Infof("Ancestor subgraph of %s has %d packages", target.ID, sub.Len())

	dot := render.ToDOT(sub, target.ID)
	if opts.dotOut {
		return writeVisualization([]byte(dot), outputPath(opts.output, target, "dot"), logger)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
	spinner.Start()
	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render svg: %w", err)
	}
	spinner.Stop()

	return writeVisualization(svg, outputPath(opts.output, target, "svg"), logger)
}

// outputPath picks the output file, deriving a name from the target's
// display name when the flag was not given.
func outputPath(flag string, target pkggraph.Node, ext string) string {
	if flag != "" {
		return flag
	}
	name := strings.ReplaceAll(frontier.DisplayName(target.Name), "/", "-")
	return fmt.Sprintf("%s.%s", name, ext)
}

func writeVisualization(data []byte, path string, logger interface{ Infof(string, ...any) }) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Infof("Wrote visualization to %s", path)
	printFile(path)
	return nil
}
