package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkgscope/frontier/internal/server"
	"github.com/pkgscope/frontier/pkg/cache"
	"github.com/pkgscope/frontier/pkg/httputil"
	"github.com/pkgscope/frontier/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // Redis address for the result cache
	mongoURI  string // MongoDB URI for the report archive
	noCache   bool   // disable result caching
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		redisAddr: os.Getenv("REDIS_ADDR"),
		mongoURI:  os.Getenv("MONGO_URI"),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the frontier HTTP API",
		Long: `Run the frontier HTTP API.

The API accepts dependency graphs over POST /v1/analyze and archives the
resulting reports. Without --redis the results are cached on disk, and
without --mongo the archive lives in process memory.

Examples:
  frontier serve
  frontier serve --addr :9090 --redis localhost:6379
  frontier serve --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", opts.redisAddr, "Redis address for the result cache (defaults to $REDIS_ADDR)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "MongoDB URI for the report archive (defaults to $MONGO_URI)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

// runServe wires the cache and store backends and runs the server until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	resultCache, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}
	defer resultCache.Close()

	reportStore, err := c.serverStore(ctx, opts)
	if err != nil {
		return err
	}
	defer reportStore.Close(context.Background())

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(c.Logger, resultCache, reportStore).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serverCache opens the Redis cache when configured, retrying while the
// backend starts up, and falls back to the local file cache otherwise.
func (c *CLI) serverCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr == "" {
		return newCache(false)
	}

	var rc *cache.RedisCache
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		rc, err = cache.NewRedisCache(ctx, opts.redisAddr)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", opts.redisAddr, err)
	}
	c.Logger.Info("Caching results in Redis", "addr", opts.redisAddr)
	return rc, nil
}

// serverStore opens the MongoDB archive when configured, retrying while
// the backend starts up, and keeps reports in memory otherwise.
func (c *CLI) serverStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		c.Logger.Warn("No MongoDB URI configured, archived reports will not survive restarts")
		return store.NewMemoryStore(), nil
	}

	var ms *store.MongoStore
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		ms, err = store.NewMongoStore(ctx, opts.mongoURI)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	c.Logger.Info("Archiving reports in MongoDB")
	return ms, nil
}
