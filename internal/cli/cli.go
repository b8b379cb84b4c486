// Package cli implements the frontier command-line interface.
//
// This package provides commands for building dependency graphs from
// lockfiles, computing workspace-frontier reports, visualizing the
// ancestor subgraph, serving the HTTP API, and managing the local result
// cache. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: Build a dependency graph from a lockfile (Cargo.lock, go mod graph)
//   - analyze: Compute the workspace frontier for a target package
//   - visualize: Render the ancestor subgraph with crossings highlighted
//   - serve: Run the HTTP API
//   - cache: Manage the analysis result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pkgscope/frontier/pkg/buildinfo"
	"github.com/pkgscope/frontier/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "frontier"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "frontier",
		Short:        "Frontier reports where workspace code depends on external packages",
		Long:         `Frontier analyzes a resolved dependency graph and reports the workspace frontier of a target package: every edge where a package inside the workspace pulls the target, or something leading to it, across the workspace boundary.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Make the logger reachable from any command via its context.
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache opens the file-backed result cache, or the null cache when
// caching is disabled or no cache directory is available.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/frontier/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
