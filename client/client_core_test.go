package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type staticTokens string

func (s staticTokens) Token(context.Context) (string, bool) { return string(s), s != "" }

func TestNew(t *testing.T) {
	c, err := New("http://example.com", nil)
	if err != nil || c == nil {
		t.Fatalf("expected client, got %v", err)
	}
	if c.BaseURL() != "http://example.com" {
		t.Fatalf("unexpected base url %q", c.BaseURL())
	}
	if _, err := New("", nil); err == nil {
		t.Fatalf("expected error for empty baseURL")
	}
}

func TestCloseIdempotent(t *testing.T) {
	c, err := New("http://example.com", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestIsUnauthenticated(t *testing.T) {
	c, _ := New("http://127.0.0.1:1", staticTokens(""))
	_, err := c.ListReminders(context.Background())
	if !IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if Message(err, "x") != "Usuário não autenticado." {
		t.Fatalf("unexpected message %q", Message(err, "x"))
	}
	if IsUnauthenticated(errors.New("other")) {
		t.Fatalf("unexpected unauthenticated detection")
	}
}

func TestClient_RecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"nome":"Ana","telefone":"51999","is_emergencia":true}]`)
	}))
	defer srv.Close()

	c, err := New(srv.URL, staticTokens("tok"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := testutil.ToFloat64(requestsTotal.WithLabelValues("contacts", "list contacts", "ok"))
	got, err := c.ListContacts(context.Background())
	if err != nil || len(got) != 1 || !got[0].Emergency {
		t.Fatalf("ListContacts unexpected: %+v %v", got, err)
	}
	after := testutil.ToFloat64(requestsTotal.WithLabelValues("contacts", "list contacts", "ok"))
	if after-before != 1 {
		t.Fatalf("expected counter to advance by 1, got %v", after-before)
	}
}
