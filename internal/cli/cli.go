package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltipper/pkg/buildinfo"
	"github.com/matzehuels/tooltipper/pkg/cache"
	"github.com/matzehuels/tooltipper/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "tooltipper"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Cache backends selectable with --cache.
const (
	cacheNone   = "none"
	cacheMemory = "memory"
	cacheFile   = "file"
	cacheRedis  = "redis"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: os.Stdout}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output (rendered pages, tables).
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tooltipper places click-triggered tooltips and simulates pages that use them",
		Long:         `Tooltipper computes where a tooltip panel goes above its trigger, replays clicks and resizes against a page fixture, and serves both over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.placeCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.profilesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

type cacheFlags struct {
	kind     string
	dir      string
	redisURL string
	ttl      time.Duration
}

func (f *cacheFlags) register(cmd *cobra.Command, kind string) {
	f.kind = kind
	cmd.Flags().StringVar(&f.kind, "cache", kind, "result cache: none, memory, file, redis")
	cmd.Flags().StringVar(&f.dir, "cache-dir", "", "file cache directory (default ~/.cache/tooltipper)")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "redis://localhost:6379/0", "redis connection URL for --cache redis")
	cmd.Flags().DurationVar(&f.ttl, "cache-ttl", time.Hour, "how long cached results stay valid")
	registerCacheCompletion(cmd)
}

// open builds the selected cache. Redis connects eagerly so that a bad URL
// fails at startup rather than on the first request.
func (f *cacheFlags) open(ctx context.Context, logger *log.Logger) (cache.Cache, error) {
	switch f.kind {
	case cacheNone, "":
		return cache.NewNullCache(), nil
	case cacheMemory:
		return cache.NewMemoryCache(0), nil
	case cacheFile:
		fc, err := cache.NewFileCache(f.dir)
		if err != nil {
			logger.Warn("file cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		logger.Debug("file cache", "dir", fc.Dir())
		return fc, nil
	case cacheRedis:
		spin := newSpinnerWithContext(ctx, "Connecting to redis...")
		spin.Start()
		rc, err := cache.NewRedisCache(ctx, f.redisURL)
		if err != nil {
			spin.StopWithError("Redis unavailable")
			return nil, err
		}
		spin.StopWithSuccess("Connected to redis")
		return rc, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache %q (want none, memory, file or redis)", f.kind)
	}
}
