package client

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("GUARDIAO_DEBUG", "true")
	c, err := New("http://example.com", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := c.http.Transport.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport to be installed when GUARDIAO_DEBUG=true")
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	// base transport returns error
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	c, err := New("http://example.com", nil, WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := c.http.Do(req); err == nil {
		t.Fatalf("expected error from underlying transport")
	}
}

func TestRedactAuth(t *testing.T) {
	dump := []byte("GET /api/contatos/ HTTP/1.1\r\nHost: x\r\nAuthorization: Token s3cr3t\r\n\r\n")
	got := redactAuth(dump)
	if strings.Contains(got, "s3cr3t") {
		t.Fatalf("token leaked: %q", got)
	}
	if !strings.Contains(got, "Authorization: [REDACTED]") {
		t.Fatalf("expected redaction marker: %q", got)
	}
}
