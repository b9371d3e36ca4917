package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/qepting91/jamcomments/internal/domain"
	"github.com/qepting91/jamcomments/internal/plugin"
	"golang.org/x/time/rate"
)

// DefaultRefreshEvery is the minimum spacing between two cache refreshes
const DefaultRefreshEvery = time.Minute

// NewHandler serves cache statistics on /, rendered fragments on /comments and
// cache refreshes on POST /refresh. Refreshes closer than refreshEvery get a 429.
func NewHandler(p *plugin.Plugin, refreshEvery time.Duration) http.Handler {
	if refreshEvery <= 0 {
		refreshEvery = DefaultRefreshEvery
	}
	limiter := rate.NewLimiter(rate.Every(refreshEvery), 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		comments, err := p.Store().Get()
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		// 1. Comments per page
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Comments per Page"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)
		pages, counts := commentsPerPage(comments)
		var barY []opts.BarData
		for _, n := range counts {
			barY = append(barY, opts.BarData{Value: n})
		}
		bar.SetXAxis(pages).AddSeries("Comments", barY)

		// 2. Linked authors
		pie := charts.NewPie()
		pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Author Links"}))
		linked, plain := authorLinks(comments)
		pie.AddSeries("Authors", []opts.PieData{
			{Name: "with website", Value: linked},
			{Name: "name only", Value: plain},
		})

		if err := bar.Render(w); err != nil {
			slog.Error("Dashboard render failed", "err", err)
			return
		}
		if err := pie.Render(w); err != nil {
			slog.Error("Dashboard render failed", "err", err)
		}
	})

	mux.HandleFunc("/comments", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		permalink := q.Get("permalink")
		if permalink == "" {
			http.Error(w, "permalink is required", http.StatusBadRequest)
			return
		}
		fragment, err := p.CommentsForPage(q.Get("base_url"), permalink)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(fragment))
	})

	mux.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		res := limiter.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			http.Error(w, "refresh rate exceeded", http.StatusTooManyRequests)
			return
		}
		if err := p.BeforeBuild(r.Context()); err != nil {
			slog.Error("Refresh failed", "err", err)
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

// StartServer blocks serving the dashboard on addr until ctx is cancelled
func StartServer(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var (
		missing   *domain.CacheMissingError
		cfgErr    *domain.ConfigurationError
		transport *domain.TransportError
		data      *domain.RemoteDataError
	)
	switch {
	case errors.As(err, &missing):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.As(err, &cfgErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &transport), errors.As(err, &data):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// commentsPerPage counts comments by postUrl, sorted by URL
func commentsPerPage(comments domain.Collection) ([]string, []int) {
	byPage := make(map[string]int)
	for _, c := range comments {
		byPage[c.PostURL]++
	}
	pages := make([]string, 0, len(byPage))
	for k := range byPage {
		pages = append(pages, k)
	}
	sort.Strings(pages)
	counts := make([]int, len(pages))
	for i, k := range pages {
		counts[i] = byPage[k]
	}
	return pages, counts
}

func authorLinks(comments domain.Collection) (linked, plain int) {
	for _, c := range comments {
		if c.Author.HasWebsite() {
			linked++
		} else {
			plain++
		}
	}
	return linked, plain
}
