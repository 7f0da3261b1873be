package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// countingRT counts requests that reach the transport.
type countingRT struct {
	n    atomic.Int32
	base http.RoundTripper
}

func (c *countingRT) RoundTrip(r *http.Request) (*http.Response, error) {
	c.n.Add(1)
	return c.base.RoundTrip(r)
}

// staticTokens is a TokenSource with a fixed token; empty means logged out.
type staticTokens string

func (s staticTokens) Token(context.Context) (string, bool) { return string(s), s != "" }

// testConn wires a Conn to srv with the given token.
func testConn(srv *httptest.Server, token string) Conn {
	return Conn{HTTP: srv.Client(), BaseURL: srv.URL, Tokens: staticTokens(token)}
}
