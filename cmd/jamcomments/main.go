// Package main provides the jamcomments command line tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/qepting91/jamcomments/internal/collector"
	"github.com/qepting91/jamcomments/internal/config"
	"github.com/qepting91/jamcomments/internal/plugin"
	"github.com/qepting91/jamcomments/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cachePath  string
	format     string
	dateFormat string
	useCached  bool
	noFollow   bool
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:           "jamcomments",
	Short:         "Fetch, cache and render site comments",
	Long:          "jamcomments downloads every comment for a site into a local JSON cache and renders the comments of a page as an HTML fragment.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogger(logFormat)
	},
}

func init() {
	defaults := config.Defaults()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cachePath, "cache", "", fmt.Sprintf("Path of the comments cache (env %s, default %s)", config.EnvCachePath, defaults.CachePath))
	flags.StringVar(&format, "format", "", fmt.Sprintf("Comment format: text, html or markdown (env %s, default %s)", config.EnvFormat, defaults.Format))
	flags.StringVar(&dateFormat, "date-format", "", fmt.Sprintf("moment.js style date pattern (env %s, default %s)", config.EnvDateFormat, defaults.DateFormat))
	flags.BoolVar(&useCached, "use-cached", false, "Reuse an existing cache instead of fetching")
	flags.BoolVar(&noFollow, "no-follow", false, `Add rel="nofollow" to commenter links`)
	flags.StringVar(&logFormat, "log-format", "json", "Log output: json or text")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Ctrl-C cancels an in-flight fetch; the cache is left untouched
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(kind string) error {
	var handler slog.Handler
	switch kind {
	case "json", "":
		handler = slog.NewJSONHandler(os.Stdout, nil)
	case "text":
		handler = slog.NewTextHandler(os.Stdout, nil)
	default:
		return fmt.Errorf("unknown log format %q", kind)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadOptions merges environment and flags, flags winning when set
func loadOptions(cmd *cobra.Command) (config.Options, error) {
	opts, err := config.FromEnv()
	if err != nil {
		return config.Options{}, err
	}
	if cachePath != "" {
		opts.CachePath = cachePath
	}
	if format != "" {
		opts.Format = format
	}
	if dateFormat != "" {
		opts.DateFormat = dateFormat
	}
	if cmd.Flags().Changed("use-cached") {
		opts.UseCached = useCached
	}
	if cmd.Flags().Changed("no-follow") {
		opts.NoFollow = noFollow
	}
	if err := opts.Validate(); err != nil {
		return config.Options{}, err
	}
	return opts, nil
}

func newPlugin(opts config.Options) (*plugin.Plugin, error) {
	c, err := collector.NewCollector(opts.CollectorMode, collector.Options{Timeout: opts.Timeout})
	if err != nil {
		return nil, err
	}
	slog.Info("Collector initialized", "mode", opts.CollectorMode)
	return plugin.New(opts, c, storage.NewFileStore(opts.CachePath), slog.Default()), nil
}
