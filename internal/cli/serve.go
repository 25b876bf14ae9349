package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/basegen/internal/server"
	"github.com/matzehuels/basegen/pkg/cache"
	"github.com/matzehuels/basegen/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		redisAddr   string
		cachePrefix string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the generation HTTP API",
		Long: `Start an HTTP server exposing the generation pipeline.

POST /generate accepts a JSON options document and returns the generated
artifacts. With --redis, artifacts are cached in Redis so multiple server
instances can share results; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, cachePrefix, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared artifact cache (host:port)")
	cmd.Flags().StringVar(&cachePrefix, "cache-prefix", "", "key prefix when sharing a Redis deployment")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, cachePrefix string, noCache bool) error {
	logger := loggerFromContext(ctx)

	store, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	var keyer cache.Keyer
	if cachePrefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cachePrefix)
	}

	runner := pipeline.NewRunner(store, keyer, logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

// serveCache picks the cache backend for the server: Redis when requested,
// the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return store, nil
	}
	return newCache(false)
}
