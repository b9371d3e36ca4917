// Package loader populates the comment cache from the remote comments service.
package loader

import (
	"context"
	"errors"
	"log/slog"

	"github.com/qepting91/jamcomments/internal/collector"
	"github.com/qepting91/jamcomments/internal/domain"
	"github.com/qepting91/jamcomments/internal/storage"
)

// Request carries the per-build settings of a load
type Request struct {
	APIURL    string
	APIToken  string
	Format    string
	UseCached bool
}

// Loader fetches the full collection once and replaces the snapshot in the store
type Loader struct {
	collector domain.Collector
	store     domain.Store
	logger    *slog.Logger
}

// New wires a Loader. A nil logger means slog.Default().
func New(c domain.Collector, s domain.Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{collector: c, store: s, logger: logger}
}

// Load validates the request, then either reuses an existing snapshot (UseCached)
// or fetches the collection and overwrites the snapshot. Nothing is written on failure.
func (l *Loader) Load(ctx context.Context, req Request) error {
	if req.APIURL == "" || req.APIToken == "" {
		return &domain.ConfigurationError{Message: "API URL & API token are required to fetch your comments"}
	}
	format, err := domain.ParseFormat(req.Format)
	if err != nil {
		return err
	}

	if req.UseCached && l.store.Exists() {
		l.logger.Info("Using cached comments")
		return nil
	}

	l.logger.Info("Fetching all comments for site", "url", req.APIURL, "format", format)
	comments, err := l.collector.FetchComments(ctx, domain.FetchRequest{
		URL:    req.APIURL,
		Token:  req.APIToken,
		Format: format,
	})
	if err != nil {
		l.logFailure(err)
		return err
	}
	l.logger.Info("Received comments", "count", len(comments))

	if err := l.store.Put(comments); err != nil {
		l.logger.Error("Failed to write comments cache", "err", err)
		return err
	}
	return nil
}

func (l *Loader) logFailure(err error) {
	l.logger.Warn("Failed to fetch comments")

	var transportErr *domain.TransportError
	var dataErr *domain.RemoteDataError
	switch {
	case errors.As(err, &transportErr):
		l.logger.Error("Comments service unreachable",
			"url", transportErr.URL, "status", transportErr.StatusCode, "err", err)
	case errors.As(err, &dataErr):
		l.logger.Error("Comments service returned invalid data", "url", dataErr.URL, "err", err)
	default:
		l.logger.Error("Fetch failed", "err", err)
	}
}

// LoadComments runs a load against the remote service with the snapshot at cachePath
func LoadComments(ctx context.Context, apiURL, apiToken, format, cachePath string, useCached bool) error {
	l := New(collector.NewRemoteClient(collector.Options{}), storage.NewFileStore(cachePath), nil)
	return l.Load(ctx, Request{
		APIURL:    apiURL,
		APIToken:  apiToken,
		Format:    format,
		UseCached: useCached,
	})
}
