package printsvc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Poster defines the interface for submitting a serialized print request.
// This interface is implemented by *Client and can be used for testing.
type Poster interface {
	Post(ctx context.Context, body []byte) error
}

// Ensure Client implements Poster at compile time.
var _ Poster = (*Client)(nil)

// ErrServiceUnreachable is returned when the service answers 404.
var ErrServiceUnreachable = errors.New("print service could not be reached")

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("unexpected response code from print service: %d", e.Code)
	if e.Body != "" {
		msg += "\n" + e.Body
	}
	return msg
}

// Client posts print requests to a single service endpoint.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger
}

const (
	defaultUserAgent = "labelprint/0.1"
	defaultTimeout   = 30 * time.Second
	maxErrorBody     = 64 * 1024
)

// Option adjusts a Client.
type Option func(*Client)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger routes warnings, such as an ignored proxy, to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for endpoint. A malformed proxy is logged and
// ignored so requests go out directly.
func NewClient(endpoint, proxy string, opts ...Option) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{
		endpoint:  u,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	if proxyURL, ok := ParseProxy(proxy); ok {
		transport.Proxy = http.ProxyURL(proxyURL)
	} else if strings.TrimSpace(proxy) != "" {
		c.log.WithField("proxy", proxy).Warn("invalid proxy string, connecting directly")
	}
	c.http.Transport = transport
	return c, nil
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Post sends body in a single attempt. A 404 yields ErrServiceUnreachable and
// any other non-2xx status a *StatusError carrying the response text.
func (c *Client) Post(ctx context.Context, body []byte) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrServiceUnreachable
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// readErrorBody returns the response text with line breaks removed.
func readErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil && len(raw) == 0 {
		return ""
	}
	return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(string(raw))
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must use http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", endpoint)
	}
	return u, nil
}
