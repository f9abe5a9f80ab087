// Package httpclient captures the cookies a live endpoint sets,
// so they can be asserted on like cookies loaded from a jar.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/jar"
	"digital.vasic.cookiematch/pkg/logging"
)

// ClientOption configures a Client via functional options.
type ClientOption func(*Client)

// Client wraps net/http.Client and records every Set-Cookie
// header seen while serving a request, including those on
// intermediate redirect responses.
type Client struct {
	method      string
	headers     http.Header
	body        string
	noRedirects bool
	logger      logging.Logger
	httpClient  *http.Client
}

// NewClient creates a capture client. Defaults: GET, a 30s
// timeout and redirects followed.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		method:  http.MethodGet,
		headers: make(http.Header),
		logger:  logging.NullLogger{},
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMethod overrides the request method.
func WithMethod(method string) ClientOption {
	return func(c *Client) { c.method = strings.ToUpper(method) }
}

// WithHeader adds a request header. It may be repeated.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) { c.headers.Add(key, value) }
}

// WithBody sets the request body and its content type.
func WithBody(contentType, body string) ClientOption {
	return func(c *Client) {
		c.body = body
		c.headers.Set("Content-Type", contentType)
	}
}

// WithoutRedirects stops at the first response instead of
// following redirects.
func WithoutRedirects() ClientOption {
	return func(c *Client) { c.noRedirects = true }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// WithLogger sets the logger for skipped headers and captures.
func WithLogger(l logging.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Capture is the outcome of one captured request.
type Capture struct {
	// StatusCode is the status of the final response.
	StatusCode int
	// URL is the final request URL after redirects.
	URL string
	// Cookies holds every parsed Set-Cookie, in response order.
	// Domain is the attribute as sent; host-only cookies have an
	// empty Domain.
	Cookies []*cookie.Cookie
}

// Jar returns the captured cookies as a jar.
func (c *Capture) Jar() *jar.Jar {
	return jar.New(c.Cookies...)
}

// Capture requests url and collects the cookies set by every
// response on the way.
func (c *Client) Capture(
	ctx context.Context, url string,
) (*Capture, error) {
	var body io.Reader
	if c.body != "" {
		body = strings.NewReader(c.body)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	rec := &recordingTransport{base: base}

	client := *c.httpClient
	client.Transport = rec
	if c.noRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	result := &Capture{
		StatusCode: resp.StatusCode,
		URL:        resp.Request.URL.String(),
	}
	for _, header := range rec.headers {
		ck, err := cookie.ParseSetCookie(header)
		if err != nil {
			c.logger.Warn("skipping malformed Set-Cookie header",
				logging.StringField("url", url),
				logging.ErrorField(err),
			)
			continue
		}
		result.Cookies = append(result.Cookies, ck)
	}

	c.logger.Debug("captured cookies",
		logging.StringField("url", result.URL),
		logging.IntField("status", result.StatusCode),
		logging.IntField("cookies", len(result.Cookies)),
	)
	return result, nil
}

// recordingTransport keeps the raw Set-Cookie headers of every
// response it carries. A Client uses a fresh one per request.
type recordingTransport struct {
	base    http.RoundTripper
	headers []string
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.headers = append(t.headers, resp.Header.Values("Set-Cookie")...)
	return resp, nil
}
