package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestTokenNeedsRefresh(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		token Token
		want  bool
	}{
		{"empty_token", Token{}, true},
		{"expired", Token{AccessToken: "t", ExpiresAt: now.Add(-time.Minute)}, true},
		{"inside_refresh_margin", Token{AccessToken: "t", ExpiresAt: now.Add(10 * time.Second)}, true},
		{"still_valid", Token{AccessToken: "t", ExpiresAt: now.Add(10 * time.Minute)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.token.NeedsRefresh(now); got != tc.want {
				t.Errorf("NeedsRefresh = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClientSearch(t *testing.T) {
	var tokenCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			tokenCalls.Add(1)
			_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
		case "/v1/search":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
			}
			if r.URL.Query().Get("q") == "" {
				t.Error("expected query parameter")
			}
			_, _ = w.Write([]byte(`{"results":[{"title":"BME280 breakout","url":"https://x.test/p/1","snippet":"<b>$14.95</b> — 23 in stock"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "secret", 2*time.Second, srv.Client())

	snippets, err := c.Search(context.Background(), "BME280 sensing USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(snippets))
	}
	if snippets[0].Text != "$14.95 — 23 in stock" {
		t.Errorf("html not stripped: %q", snippets[0].Text)
	}

	// A second search must reuse the cached token.
	if _, err := c.Search(context.Background(), "RP2040"); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if got := tokenCalls.Load(); got != 1 {
		t.Errorf("expected 1 token fetch, got %d", got)
	}
}

func TestClientSearchTimeoutSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":3600}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "secret", 20*time.Millisecond, srv.Client())
	if _, err := c.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestExtractText(t *testing.T) {
	in := `<div><script>var x=1;</script><p>ESP32-S3 module</p> <span>$3.40</span></div>`
	want := "ESP32-S3 module $3.40"
	if got := ExtractText(in); got != want {
		t.Errorf("ExtractText = %q, want %q", got, want)
	}
}
