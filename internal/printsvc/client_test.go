package printsvc

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_PostsJSONOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var gotMethod, gotContentType, gotAccept, gotUserAgent, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/v1/print_jobs", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	if err := c.Post(ctx, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("server calls = %d, want 1", calls.Load())
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %q, want POST", gotMethod)
	}
	if gotContentType != "application/json" || gotAccept != "application/json" {
		t.Fatalf("headers Content-Type=%q Accept=%q, want application/json", gotContentType, gotAccept)
	}
	if !strings.HasPrefix(gotUserAgent, "labelprint/") {
		t.Fatalf("User-Agent = %q, want labelprint/*", gotUserAgent)
	}
	if gotBody != `{"a":1}` {
		t.Fatalf("body = %q, want %q", gotBody, `{"a":1}`)
	}
}

func TestClient_NotFoundIsUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	err = c.Post(context.Background(), []byte(`{}`))
	if !errors.Is(err, ErrServiceUnreachable) {
		t.Fatalf("Post error = %v, want ErrServiceUnreachable", err)
	}
}

func TestClient_UnexpectedStatusCarriesBody(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	err = c.Post(context.Background(), []byte(`{}`))

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Post error = %v, want StatusError", err)
	}
	if statusErr.Code != 500 || statusErr.Body != "boom" {
		t.Fatalf("StatusError = %+v, want {500 boom}", statusErr)
	}
	if calls.Load() != 1 {
		t.Fatalf("server calls = %d, want exactly 1 attempt", calls.Load())
	}
}

func TestClient_ErrorBodyLinesJoined(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("line one\r\nline two\n"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	var statusErr *StatusError
	if err := c.Post(context.Background(), nil); !errors.As(err, &statusErr) {
		t.Fatalf("Post error = %v, want StatusError", err)
	}
	if statusErr.Body != "line oneline two" {
		t.Fatalf("Body = %q, want %q", statusErr.Body, "line oneline two")
	}
	if !strings.Contains(statusErr.Error(), "422") {
		t.Fatalf("Error() = %q, want it to mention 422", statusErr.Error())
	}
}

func TestClient_EmptyErrorBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	var statusErr *StatusError
	if err := c.Post(context.Background(), nil); !errors.As(err, &statusErr) {
		t.Fatalf("Post error = %v, want StatusError", err)
	}
	if statusErr.Body != "" || statusErr.Error() != "unexpected response code from print service: 502" {
		t.Fatalf("StatusError = %+v (%q)", statusErr, statusErr.Error())
	}
}

func TestClient_MalformedProxyConnectsDirectly(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, "bad")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Post(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
}

func TestClient_ProxyIsUsed(t *testing.T) {
	t.Parallel()

	var proxied atomic.Bool
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Host == "print.invalid" {
			proxied.Store(true)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(proxy.Close)

	c, err := NewClient("http://print.invalid/graphql", strings.TrimPrefix(proxy.URL, "http://"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Post(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if !proxied.Load() {
		t.Fatalf("request did not go through proxy")
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1", "")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Post(ctx, []byte(`{}`)); err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("Post error = %v, want execute request error", err)
	}
}

func TestNewClient_RejectsBadEndpoints(t *testing.T) {
	for _, endpoint := range []string{"", "   ", "ftp://host/x", "http://", "://nope"} {
		if _, err := NewClient(endpoint, ""); err == nil {
			t.Fatalf("NewClient(%q) returned nil error, want error", endpoint)
		}
	}
}

func TestNewClient_Options(t *testing.T) {
	c, err := NewClient("https://print.example.org/api", "", WithTimeout(3*time.Second), WithUserAgent("custom/1"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.http.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", c.http.Timeout)
	}
	if c.userAgent != "custom/1" {
		t.Fatalf("userAgent = %q, want custom/1", c.userAgent)
	}
	if c.Endpoint() != "https://print.example.org/api" {
		t.Fatalf("Endpoint = %q", c.Endpoint())
	}
}
