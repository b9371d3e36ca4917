package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/qepting91/jamcomments/internal/domain"
)

// DefaultTimeout bounds the whole request including reading the body
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the fetcher to the comments service
const DefaultUserAgent = "jamcomments-go/1.0"

// RemoteClient fetches the complete comment collection for a site in one request
type RemoteClient struct {
	httpClient *http.Client
	userAgent  string
}

type commentsQuery struct {
	Format domain.Format `url:"format"`
}

// Options configures the remote client. Zero values fall back to defaults.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

func NewRemoteClient(opts Options) *RemoteClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &RemoteClient{
		httpClient: httpClient,
		userAgent:  opts.UserAgent,
	}
}

func (rc *RemoteClient) FetchComments(ctx context.Context, req domain.FetchRequest) (domain.Collection, error) {
	endpoint, err := requestURL(req)
	if err != nil {
		return nil, &domain.ConfigurationError{Message: fmt.Sprintf("invalid API URL %q", req.URL), Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.TransportError{URL: endpoint, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	httpReq.Header.Set("User-Agent", rc.userAgent)

	resp, err := rc.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.TransportError{URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.TransportError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{URL: endpoint, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	comments, err := domain.DecodeCollection(body)
	if err != nil {
		return nil, &domain.RemoteDataError{URL: endpoint, Message: "response is not a valid comment collection", Cause: err}
	}
	return comments, nil
}

// requestURL appends the format parameter, keeping any query already on the API URL
func requestURL(req domain.FetchRequest) (string, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", req.URL)
	}

	params, err := query.Values(commentsQuery{Format: req.Format})
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, vs := range params {
		q.Del(k)
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
