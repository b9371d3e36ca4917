package main

import (
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download all comments into the cache",
	Long:  `Fetch every comment for the site from the comments service and replace the local cache. Run it once before a build.`,
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	p, err := newPlugin(opts)
	if err != nil {
		return err
	}
	return p.BeforeBuild(cmd.Context())
}
