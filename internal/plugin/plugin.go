// Package plugin exposes the two host integration points: the before-build hook
// that refreshes the cache, and the per-page shortcode that renders comments.
package plugin

import (
	"context"
	"log/slog"

	"github.com/qepting91/jamcomments/internal/config"
	"github.com/qepting91/jamcomments/internal/domain"
	"github.com/qepting91/jamcomments/internal/loader"
	"github.com/qepting91/jamcomments/internal/render"
	"github.com/qepting91/jamcomments/internal/selector"
)

type Plugin struct {
	opts     config.Options
	store    domain.Store
	loader   *loader.Loader
	renderer *render.Renderer
}

func New(opts config.Options, c domain.Collector, s domain.Store, logger *slog.Logger) *Plugin {
	return &Plugin{
		opts:     opts,
		store:    s,
		loader:   loader.New(c, s, logger),
		renderer: render.New(opts.DateFormat, opts.NoFollow),
	}
}

// BeforeBuild refreshes the comment cache. The host should abort the build on error.
func (p *Plugin) BeforeBuild(ctx context.Context) error {
	return p.loader.Load(ctx, loader.Request{
		APIURL:    p.opts.APIURL,
		APIToken:  p.opts.APIToken,
		Format:    p.opts.Format,
		UseCached: p.opts.UseCached,
	})
}

// CommentsForPage is the template shortcode: select the page's comments and render them
func (p *Plugin) CommentsForPage(baseURL, permalink string) (string, error) {
	comments, err := selector.Select(p.store, baseURL, permalink)
	if err != nil {
		return "", err
	}
	return p.renderer.Render(comments)
}

// Store gives read access to the snapshot the plugin renders from
func (p *Plugin) Store() domain.Store {
	return p.store
}
