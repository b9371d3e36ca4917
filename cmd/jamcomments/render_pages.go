package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/qepting91/jamcomments/internal/domain"
	"github.com/qepting91/jamcomments/internal/ingest"
	"github.com/spf13/cobra"
)

var (
	pagesFile    string
	pagesOutDir  string
	pagesBaseURL string
	pagesFetch   bool
)

var renderPagesCmd = &cobra.Command{
	Use:   "render-pages",
	Short: "Render comment fragments for every page listed in a CSV file",
	Long: `Render comment fragments for many pages. The CSV has a header row and the columns
permalink,output. When output is empty the file is named after the permalink.`,
	RunE: runRenderPages,
}

func init() {
	renderPagesCmd.Flags().StringVar(&pagesFile, "pages", "", "CSV file listing permalink,output")
	renderPagesCmd.Flags().StringVar(&pagesOutDir, "out-dir", "comments", "Directory for rendered fragments")
	renderPagesCmd.Flags().StringVar(&pagesBaseURL, "base-url", "", "Base URL of the site")
	renderPagesCmd.Flags().BoolVar(&pagesFetch, "fetch", false, "Run the fetch step before rendering")
	_ = renderPagesCmd.MarkFlagRequired("pages")
	_ = renderPagesCmd.MarkFlagRequired("base-url")
	rootCmd.AddCommand(renderPagesCmd)
}

func runRenderPages(cmd *cobra.Command, _ []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	p, err := newPlugin(opts)
	if err != nil {
		return err
	}
	if pagesFetch {
		if err := p.BeforeBuild(cmd.Context()); err != nil {
			return err
		}
	}

	pages, err := ingest.LoadPages(pagesFile)
	if err != nil {
		return fmt.Errorf("failed to read pages: %w", err)
	}

	for _, page := range pages {
		html, err := p.CommentsForPage(pagesBaseURL, page.Permalink)
		if err != nil {
			return fmt.Errorf("render %s: %w", page.Permalink, err)
		}
		out := filepath.Join(pagesOutDir, outputName(page))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		slog.Info("Rendered comments", "permalink", page.Permalink, "out", out)
	}
	slog.Info("Render complete", "pages", len(pages))
	return nil
}

// outputName falls back to the permalink, "/" becoming index.html
func outputName(page domain.Page) string {
	if page.Output != "" {
		return filepath.FromSlash(page.Output)
	}
	name := strings.Trim(page.Permalink, "/")
	if name == "" {
		name = "index"
	}
	return filepath.FromSlash(name) + ".html"
}
