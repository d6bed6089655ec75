package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbox/internal/server"
	"github.com/matzehuels/flowbox/pkg/cache"
	"github.com/matzehuels/flowbox/pkg/pipeline"
	"github.com/matzehuels/flowbox/pkg/store"
)

// Environment variables providing defaults for the serve flags.
const (
	envAddr     = "FLOWBOX_ADDR"
	envRedisURL = "FLOWBOX_REDIS_URL"
	envMongoURI = "FLOWBOX_MONGO_URI"

	defaultAddr = ":8080"

	// redisKeyPrefix scopes keys in a shared Redis instance.
	redisKeyPrefix = "flowbox:"
)

// serveOpts holds the serve command flags.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	noCache  bool
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     envOr(envAddr, defaultAddr),
		redisURL: os.Getenv(envRedisURL),
		mongoURI: os.Getenv(envMongoURI),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Layouts and artifacts are cached in Redis when --redis is set, and in the
local cache directory otherwise. Layouts created through POST /v1/layouts
are stored in MongoDB when --mongo is set, and in memory otherwise.

Flags default to the FLOWBOX_ADDR, FLOWBOX_REDIS_URL and FLOWBOX_MONGO_URI
environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", opts.redisURL, "Redis URL for the result cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "MongoDB URI for stored layouts (e.g. mongodb://localhost:27017)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache, store and runner and serves until ctx is done.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newServeRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	var st store.Store = store.NewMemoryStore()
	if opts.mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, opts.mongoURI)
		if err != nil {
			return fmt.Errorf("open layout store: %w", err)
		}
		st = ms
		logger.Info("storing layouts in mongo", "database", store.DefaultDatabase, "collection", store.DefaultCollection)
	}
	defer st.Close()

	printSuccess("Serving on %s", StyleLink.Render(listenURL(opts.addr)))
	printKeyValue("cache", opts.cacheBackend())
	printKeyValue("store", opts.storeBackend())
	prog := newProgress(logger)

	srv := server.New(runner, st, logger)
	err = srv.ListenAndServe(ctx, opts.addr)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	prog.done("Server stopped")
	return err
}

func (c *CLI) newServeRunner(ctx context.Context, opts serveOpts) (*pipeline.Runner, error) {
	if opts.noCache || opts.redisURL == "" {
		return c.newRunner(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, opts.redisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("caching results in redis", "prefix", redisKeyPrefix)
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix)
	return pipeline.NewRunner(rc, keyer, c.Logger), nil
}

// listenURL turns a listen address into a URL for display.
func listenURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func (o serveOpts) cacheBackend() string {
	switch {
	case o.noCache:
		return "none"
	case o.redisURL != "":
		return "redis"
	default:
		return "local"
	}
}

func (o serveOpts) storeBackend() string {
	if o.mongoURI != "" {
		return "mongo"
	}
	return "memory"
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
