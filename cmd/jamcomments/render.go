package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	renderBaseURL   string
	renderPermalink string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the comments of one page as HTML",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderBaseURL, "base-url", "", "Base URL of the site, e.g. https://example.com")
	renderCmd.Flags().StringVar(&renderPermalink, "permalink", "", "Page path, e.g. /blog/hello")
	_ = renderCmd.MarkFlagRequired("base-url")
	_ = renderCmd.MarkFlagRequired("permalink")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	p, err := newPlugin(opts)
	if err != nil {
		return err
	}
	html, err := p.CommentsForPage(renderBaseURL, renderPermalink)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
	return err
}
