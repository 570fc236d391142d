package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}, "finish_reason": "stop"},
		},
		"usage": map[string]int{"total_tokens": 42},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestComplete(t *testing.T) {
	t.Run("Given a healthy endpoint, When completing, Then the text and request shape are right", func(t *testing.T) {
		var gotAuth string
		var gotReq chatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewDecoder(r.Body).Decode(&gotReq)
			w.Write([]byte(completionBody("Block focus time after lunch.")))
		}))
		defer server.Close()

		c := NewOpenAIClient("test-key", WithBaseURL(server.URL), WithModel("gpt-4o-mini"))

		out, err := c.Complete(context.Background(), "suggest something")
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if out != "Block focus time after lunch." {
			t.Errorf("unexpected completion: %q", out)
		}
		if gotAuth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header: %q", gotAuth)
		}
		if gotReq.Model != "gpt-4o-mini" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "suggest something" {
			t.Errorf("unexpected request: %+v", gotReq)
		}
	})

	t.Run("Given a transient 429, When completing, Then it retries and succeeds", func(t *testing.T) {
		var mu sync.Mutex
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error": {"message": "rate limited"}}`))
				return
			}
			w.Write([]byte(completionBody("done")))
		}))
		defer server.Close()

		c := NewOpenAIClient("test-key", WithBaseURL(server.URL))

		out, err := c.Complete(context.Background(), "anything")
		if err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
		if out != "done" || calls != 2 {
			t.Errorf("expected success on attempt 2, got %q after %d calls", out, calls)
		}
	})

	t.Run("Given a 400, When completing, Then it fails without retrying", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"message": "invalid model"}}`))
		}))
		defer server.Close()

		c := NewOpenAIClient("test-key", WithBaseURL(server.URL))

		_, err := c.Complete(context.Background(), "anything")
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), "invalid model") {
			t.Errorf("expected API message in error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected no retry on 400, got %d calls", calls)
		}
	})

	t.Run("Given no API key, When completing, Then it fails before any request", func(t *testing.T) {
		c := NewOpenAIClient("")
		if _, err := c.Complete(context.Background(), "anything"); err == nil {
			t.Error("expected an error with an empty key")
		}
	})

	t.Run("Given a cancelled context during backoff, When completing, Then it returns promptly", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewOpenAIClient("test-key", WithBaseURL(server.URL))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := c.Complete(ctx, "anything"); err == nil {
			t.Error("expected a context error")
		}
	})
}
