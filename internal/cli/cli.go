// Package cli implements the tagcloud command-line interface.
//
// # Commands
//
//   - render: draw one or more text files as word clouds
//   - words: print or browse the ranked word list of a file
//   - fonts: list the available font families
//   - serve: run the HTTP API
//   - cache: inspect and clear the local artifact cache
//   - completion: generate shell completion scripts
//
// Every command accepts --verbose (-v) for debug logging and --config to
// read settings from a file other than ~/.config/tagcloud/config.toml.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tagcloud/tagcloud/pkg/buildinfo"
	"github.com/tagcloud/tagcloud/pkg/cache"
	"github.com/tagcloud/tagcloud/pkg/config"
	"github.com/tagcloud/tagcloud/pkg/fonts"
	"github.com/tagcloud/tagcloud/pkg/observability"
	"github.com/tagcloud/tagcloud/pkg/pipeline"
)

const appName = "tagcloud"

// Log levels exported for main.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	verbose    bool
	configPath string
	config     *config.File
}

// New returns a CLI logging to w at level and printing results to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		config: &config.File{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand returns the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "tagcloud renders word clouds from text",
		Long:              `tagcloud counts the words of a text, sizes them by frequency and packs them into a raster image without overlaps.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.wordsCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose, loads the config
// file and registers font files it names.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	f, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = f
	for _, path := range f.FontFiles {
		name, err := fonts.LoadFile(path)
		if err != nil {
			return err
		}
		c.Logger.Debug("loaded font", "name", name, "path", path)
	}
	return nil
}

// baseOptions returns pipeline options seeded from the config file.
func (c *CLI) baseOptions() pipeline.Options {
	var opts pipeline.Options
	c.config.Apply(&opts)
	opts.Logger = c.Logger
	return opts
}

// newRunner returns a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns cache_dir from the config file, or the XDG cache
// location (~/.cache/tagcloud).
func (c *CLI) cacheDir() (string, error) {
	if dir, err := c.config.ExpandCacheDir(); err != nil || dir != "" {
		return dir, err
	}
	return cacheDir()
}

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
