package cli

import (
	"github.com/spf13/cobra"

	"github.com/tagcloud/tagcloud/internal/server"
	"github.com/tagcloud/tagcloud/pkg/cache"
	"github.com/tagcloud/tagcloud/pkg/pipeline"
)

// serveKeyPrefix keeps server entries apart from other users of a shared
// Redis database.
const serveKeyPrefix = "tagcloud:serve:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes rendering over HTTP:

  POST /render   {"text": "...", "options": {...}}  -> image
  POST /words    {"text": "...", "options": {...}}  -> ranked words
  GET  /fonts, /healthz, /version

Results are cached in Redis when --redis is set, otherwise in the local
cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") && c.config.Serve.Addr != "" {
				addr = c.config.Serve.Addr
			}
			if !cmd.Flags().Changed("redis") && c.config.Serve.Redis != "" {
				redisURL = c.config.Serve.Redis
			}

			var (
				cc    cache.Cache
				keyer cache.Keyer
				err   error
			)
			switch {
			case noCache:
				cc = cache.NewNullCache()
			case redisURL != "":
				cc, err = cache.NewRedisCache(ctx, redisURL)
				keyer = cache.NewScopedKeyer(nil, serveKeyPrefix)
			default:
				cc, err = c.newCache(false)
			}
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(cc, keyer, c.Logger)
			defer runner.Close()

			defaults := c.baseOptions()
			defaults.Logger = nil
			srv := server.New(server.Config{
				Addr:     addr,
				Runner:   runner,
				Logger:   c.Logger,
				Defaults: defaults,
			})
			printInfo("Listening on %s", StyleHighlight.Render(addr))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the shared cache, e.g. redis://localhost:6379/0")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}
