package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicComplete(t *testing.T) {
	t.Run("returns_first_content_block", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("x-api-key") != "test-key" {
				t.Errorf("missing api key header")
			}
			var req anthropicRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
				t.Errorf("unexpected messages: %+v", req.Messages)
			}
			_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello"}]}`))
		}))
		defer srv.Close()

		c := NewAnthropicClient("test-key", "test-model", srv.Client())
		c.baseURL = srv.URL

		got, err := c.Complete(context.Background(), "say hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "hello" {
			t.Errorf("expected hello, got %q", got)
		}
	})

	t.Run("non_200_is_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewAnthropicClient("test-key", "test-model", srv.Client())
		c.baseURL = srv.URL

		if _, err := c.Complete(context.Background(), "p"); err == nil {
			t.Fatal("expected error for 429 response")
		}
	})

	t.Run("missing_key_fails_without_network", func(t *testing.T) {
		c := NewAnthropicClient("", "test-model", nil)
		if _, err := c.Complete(context.Background(), "p"); err == nil {
			t.Fatal("expected error without api key")
		}
	})
}

func TestCleanJSON(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      `{"a":1}`,
		"```json\n{\"a\":1}\n```":        `{"a":1}`,
		"```\n[1,2]\n```":                `[1,2]`,
		"  \n```json\n{\"b\":2}\n```\n ": `{"b":2}`,
	}
	for in, want := range cases {
		if got := CleanJSON(in); got != want {
			t.Errorf("CleanJSON(%q) = %q, want %q", in, got, want)
		}
	}
}
