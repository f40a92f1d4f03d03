// Package http provides the HTTP client shared by every outbound integration.
// It wraps the retryablehttp.Client from HashiCorp but pins it to a single
// attempt per request: callers always receive the first response or the first
// transport failure, never a retried one.
package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gabapcia/chainscope/internal/pkg/logger"

	"github.com/hashicorp/go-retryablehttp"
)

// config holds internal settings for the HTTP client.
type config struct {
	timeout time.Duration // maximum duration for a single HTTP request
}

// Option defines a functional option for configuring the HTTP client.
type Option func(*config)

// NewClient creates and returns a retryablehttp.Client configured with
// the provided options. If no options are given, default values are used:
//
//   - timeout: 30 seconds
//
// The client never retries, and non-2xx responses are handed back to the
// caller untouched so the response body can still be inspected. Every
// outbound request is logged at debug level without its query string.
func NewClient(opts ...Option) *retryablehttp.Client {
	cfg := config{
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient.Timeout = cfg.timeout
	client.RetryMax = 0
	client.CheckRetry = neverRetry
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.RequestLogHook = logRequest
	return client
}

// neverRetry reports every outcome as final. Server errors are returned to the
// caller as regular responses; transport errors are handed back unchanged.
func neverRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}

	return false, err
}

// logRequest records the outbound request. The query string carries the API
// key and is never logged.
func logRequest(_ retryablehttp.Logger, req *http.Request, attempt int) {
	logger.Debug(req.Context(), "outbound http request",
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"attempt", attempt,
	)
}

// WithTimeout sets the maximum duration allowed for a single HTTP request.
// Default: 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// StripURL removes the request URL from a transport error, keeping only the
// underlying cause. Request URLs may carry credentials in their query string.
func StripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}

	return err
}
