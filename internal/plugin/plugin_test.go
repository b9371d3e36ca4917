package plugin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/qepting91/jamcomments/internal/collector"
	"github.com/qepting91/jamcomments/internal/config"
	"github.com/qepting91/jamcomments/internal/domain"
	"github.com/qepting91/jamcomments/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func options() config.Options {
	opts := config.Defaults()
	opts.APIURL = "https://api.example/comments"
	opts.APIToken = "token"
	opts.NoFollow = true
	return opts
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPlugin_BuildThenRender(t *testing.T) {
	mock := &collector.MockClient{Comments: domain.Collection{
		{
			ID:       domain.CommentID("1"),
			PostURL:  "https://ex.com/blog/a",
			Author:   domain.Author{Name: "Ann", Website: "https://ann.example"},
			Text:     "Hi",
			PostedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       domain.CommentID("2"),
			PostURL:  "https://ex.com/blog/b",
			Author:   domain.Author{Name: "Bob"},
			Text:     "Yo",
			PostedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}}
	p := New(options(), mock, storage.NewMemoryStore(), quiet())

	require.NoError(t, p.BeforeBuild(context.Background()))

	out, err := p.CommentsForPage("https://ex.com", "/blog/a")
	require.NoError(t, err)
	assert.Contains(t, out, `data-id="1"`)
	assert.NotContains(t, out, `data-id="2"`)
	assert.Contains(t, out, `<a href="https://ann.example" target="_blank" rel="nofollow">Ann</a>`)
	assert.Contains(t, out, "2024-01-01")

	empty, err := p.CommentsForPage("https://ex.com", "/blog/none")
	require.NoError(t, err)
	assert.Equal(t, "<section class=\"jamcomments comments\">\n</section>", empty)
}

func TestPlugin_RenderBeforeBuild(t *testing.T) {
	p := New(options(), collector.NewMockClient(), storage.NewMemoryStore(), quiet())

	_, err := p.CommentsForPage("https://ex.com", "/blog/a")
	var missing *domain.CacheMissingError
	assert.True(t, errors.As(err, &missing))
}

func TestPlugin_BeforeBuildConfigurationError(t *testing.T) {
	opts := options()
	opts.APIToken = ""
	store := storage.NewMemoryStore()
	p := New(opts, collector.NewMockClient(), store, quiet())

	err := p.BeforeBuild(context.Background())
	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.False(t, store.Exists())
}
