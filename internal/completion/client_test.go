package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompleteSuccess(t *testing.T) {
	var gotBody chatRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Olá! Como posso ajudar? 😊"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("sk-test", WithBaseURL(srv.URL))
	text, err := c.Complete(context.Background(), "bom dia", "financial_assistant")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if text != "Olá! Como posso ajudar? 😊" {
		t.Errorf("text = %q", text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody.Model != defaultModel {
		t.Errorf("model = %q, want %q", gotBody.Model, defaultModel)
	}
	if gotBody.MaxTokens != maxTokens {
		t.Errorf("max_tokens = %d, want %d", gotBody.MaxTokens, maxTokens)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("messages = %d, want system + user", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "system" || !strings.Contains(gotBody.Messages[0].Content, "MTN") {
		t.Error("first message must carry the system persona")
	}
	if gotBody.Messages[1].Role != "user" || gotBody.Messages[1].Content != "bom dia" {
		t.Errorf("user message = %+v", gotBody.Messages[1])
	}
}

func TestCompleteUnknownContextTagUsesDefaultPersona(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if !strings.Contains(body.Messages[0].Content, "assistente financeiro") {
			t.Error("unknown tags must fall back to the financial persona")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "ok"}}},
		})
	}))
	defer srv.Close()

	c := NewClient("sk-test", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), "oi", "something_else"); err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), "oi", "financial_assistant"); err == nil {
		t.Fatal("expected error for non-OK status")
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), "oi", "financial_assistant"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestCompleteUnreachableServer(t *testing.T) {
	c := NewClient("sk-test", WithBaseURL("http://127.0.0.1:0"))
	if _, err := c.Complete(context.Background(), "oi", "financial_assistant"); err == nil {
		t.Fatal("expected transport error")
	}
}
