package main

import (
	"log/slog"
	"time"

	"github.com/qepting91/jamcomments/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	servePort    string
	serveFetch   bool
	refreshEvery time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview dashboard",
	Long: `Serve cache statistics on /, rendered fragments on /comments?base_url=...&permalink=...
and cache refreshes on POST /refresh.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (env PORT, default 8080)")
	serveCmd.Flags().BoolVar(&serveFetch, "fetch", false, "Run the fetch step before serving")
	serveCmd.Flags().DurationVar(&refreshEvery, "refresh-every", dashboard.DefaultRefreshEvery, "Minimum time between two POST /refresh calls")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if servePort != "" {
		opts.Port = servePort
	}
	p, err := newPlugin(opts)
	if err != nil {
		return err
	}
	if serveFetch {
		if err := p.BeforeBuild(cmd.Context()); err != nil {
			return err
		}
	}

	slog.Info("Starting Dashboard", "port", opts.Port)
	return dashboard.StartServer(cmd.Context(), ":"+opts.Port, dashboard.NewHandler(p, refreshEvery))
}
