package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Getter issues a GET request and returns the fully read response.
type Getter interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// Response is a completely received HTTP response.
type Response struct {
	// URL is the final URL after redirects.
	URL        string
	Status     string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Text returns the body as a string, unmodified.
func (r *Response) Text() string {
	return string(r.Body)
}

// Client is the default Getter. It follows redirects through the underlying
// Doer and reads the whole body before returning.
type Client struct {
	doer      Doer
	userAgent string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a Client over doer. A nil doer uses NewHTTPClient.
func NewClient(doer Doer, opts ...ClientOption) *Client {
	if doer == nil {
		doer = NewHTTPClient()
	}
	c := &Client{doer: doer}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient returns an *http.Client with the default redirect policy,
// no timeout, and an OpenTelemetry-instrumented transport.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// Get performs a GET against url. HTTP error statuses are returned as
// regular responses; only transport and read failures produce an error.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body from %s: %w", url, err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		URL:        finalURL,
		Status:     resp.Status,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
