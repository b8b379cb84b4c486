package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkgscope/frontier/pkg/cache"
	"github.com/pkgscope/frontier/pkg/frontier"
	"github.com/pkgscope/frontier/pkg/observability"
	"github.com/pkgscope/frontier/pkg/pkggraph"
	"github.com/pkgscope/frontier/pkg/render"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	skips       []string // substrings pruning the traversal
	format      string   // output format name
	output      string   // output file path (stdout if empty)
	debug       bool     // log each crossing as direct/indirect
	noCache     bool     // bypass the result cache
	interactive bool     // pick interactively when the target is ambiguous
}

// analyzeCommand creates the analyze command computing frontier reports.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{format: string(render.FormatTOML)}

	cmd := &cobra.Command{
		Use:   "analyze <graph.json> <package-id>",
		Short: "Compute the workspace frontier for a target package",
		Long: `Compute the workspace frontier for a target package.

The package ID is matched as a case-sensitive substring against the graph's
package identifiers and must match exactly one package. Use --skip to prune
packages (and everything reachable only through them) from the traversal.

Examples:
  frontier analyze graph.json serde
  frontier analyze graph.json "serde 1.0.188" --format json
  frontier analyze graph.json tokio --skip hyper --skip tower -o report.toml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), &opts, args[0], args[1])
		},
	}

	cmd.Flags().StringArrayVar(&opts.skips, "skip", nil, "prune packages whose ID contains this substring (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: toml (default), json, html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log each frontier crossing as direct or indirect")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick interactively when the package ID is ambiguous")

	return cmd
}

// runAnalyze loads the graph, resolves the target and writes the report.
func runAnalyze(ctx context.Context, opts *analyzeOpts, graphPath, packageID string) error {
	logger := loggerFromContext(ctx)

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(graphPath)
	if err != nil {
		return fmt.Errorf("read graph %s: %w", graphPath, err)
	}
	g, err := pkggraph.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("load graph %s: %w", graphPath, err)
	}
	logger.Debugf("Loaded %d packages with %d dependencies", g.NodeCount(), g.EdgeCount())

	resultCache, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer resultCache.Close()

	key := cache.ReportKey(cache.Hash(raw), packageID, opts.skips)
	if report, ok := cachedReport(ctx, resultCache, key); ok && !opts.debug {
		logger.Debug("Report served from cache", "key", key)
		if err := writeReport(ctx, report, format, opts.output, logger); err != nil {
			return err
		}
		printReportStats(len(report.Sources()), report.Crossings(), true)
		return nil
	}

	target, err := resolveTarget(ctx, g, packageID, opts.interactive)
	if err != nil {
		return err
	}
	logger.Infof("Analyzing dependents of %s", target.ID)

	resolveOpts := frontier.Options{}
	if opts.debug {
		resolveOpts.DebugLog = logger.Debugf
	}

	prog := newProgress(logger)
	report, err := frontier.Resolve(g, target, frontier.SkipPredicate(opts.skips), resolveOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found %d frontier crossings from %d sources", report.Crossings(), len(report.Sources())))

	if data, err := json.Marshal(report); err == nil {
		if err := resultCache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			logger.Debug("Caching report failed", "err", err)
		}
	}

	if err := writeReport(ctx, report, format, opts.output, logger); err != nil {
		return err
	}
	printReportStats(len(report.Sources()), report.Crossings(), false)
	return nil
}

// cachedReport loads a report from the cache, tolerating misses and
// corrupt entries.
func cachedReport(ctx context.Context, c cache.Cache, key string) (*frontier.Report, bool) {
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var report frontier.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	return &report, true
}

// resolveTarget resolves the package ID substring. On an ambiguous
// substring the full candidate list is shown, either as an interactive
// picker or as log lines ahead of the failure, so the user can see which
// IDs matched and refine the substring.
func resolveTarget(ctx context.Context, g *pkggraph.Graph, packageID string, interactive bool) (pkggraph.Node, error) {
	target, err := frontier.ResolveTarget(g, packageID)
	if err == nil {
		return target, nil
	}

	var ambiguous *frontier.AmbiguousTargetError
	if !errors.As(err, &ambiguous) || len(ambiguous.Matches) < 2 {
		return pkggraph.Node{}, err
	}

	if !interactive {
		logger := loggerFromContext(ctx)
		logger.Errorf("Package ID %q matches:", packageID)
		for _, id := range ambiguous.Matches {
			logger.Errorf("  %s", id)
		}
		return pkggraph.Node{}, err
	}

	choice, err := pickTarget(ctx, ambiguous.Matches)
	if err != nil {
		return pkggraph.Node{}, err
	}
	n, ok := g.Node(choice)
	if !ok {
		return pkggraph.Node{}, fmt.Errorf("selected package %s is not in the graph", choice)
	}
	return n, nil
}

// writeReport renders the report to the output path (or stdout).
func writeReport(ctx context.Context, report *frontier.Report, format render.Format, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	observability.Analysis().OnRenderStart(ctx, string(format))
	start := time.Now()
	err = render.Write(report, format, out)
	observability.Analysis().OnRenderComplete(ctx, string(format), time.Since(start), err)
	if err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote report to %s", path)
		printFile(path)
	}
	return nil
}
