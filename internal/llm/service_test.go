package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteNotConfigured(t *testing.T) {
	cases := []struct {
		name string
		svc  *Service
	}{
		{"nil service", nil},
		{"provider none", NewService("none", "key", "model")},
		{"empty api key", NewService("anthropic", "", "claude-sonnet-4-20250514")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.svc.Complete(context.Background(), "system", nil, 100)
			if !errors.Is(err, ErrNotConfigured) {
				t.Errorf("Complete error = %v, want ErrNotConfigured", err)
			}
		})
	}
}

func TestCompleteUnknownProvider(t *testing.T) {
	svc := NewService("mystery", "key", "model")
	_, err := svc.Complete(context.Background(), "system", nil, 100)
	if err == nil || errors.Is(err, ErrNotConfigured) {
		t.Errorf("Complete error = %v, want unknown provider error", err)
	}
}

func TestCallAnthropic(t *testing.T) {
	var gotReq struct {
		Model     string    `json:"model"`
		MaxTokens int       `json:"max_tokens"`
		System    string    `json:"system"`
		Messages  []Message `json:"messages"`
	}
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"text": "hello from the model"}]}`))
	}))
	defer server.Close()

	svc := NewService("anthropic", "test-key", "claude-sonnet-4-20250514")
	svc.anthropicURL = server.URL

	messages := []Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: "how are you"},
	}
	reply, err := svc.Complete(context.Background(), "be nice", messages, 1024)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != "hello from the model" {
		t.Errorf("reply = %q", reply)
	}

	if gotHeaders.Get("x-api-key") != "test-key" {
		t.Error("x-api-key header not sent")
	}
	if gotHeaders.Get("anthropic-version") != "2023-06-01" {
		t.Errorf("anthropic-version = %q", gotHeaders.Get("anthropic-version"))
	}
	if gotReq.System != "be nice" {
		t.Errorf("system = %q", gotReq.System)
	}
	if gotReq.MaxTokens != 1024 {
		t.Errorf("max_tokens = %d", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 3 || gotReq.Messages[2].Content != "how are you" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestCallAnthropicAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	svc := NewService("anthropic", "test-key", "claude-sonnet-4-20250514")
	svc.anthropicURL = server.URL

	_, err := svc.Complete(context.Background(), "system", []Message{{Role: "user", Content: "hi"}}, 100)
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestCallAnthropicEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": []}`))
	}))
	defer server.Close()

	svc := NewService("anthropic", "test-key", "claude-sonnet-4-20250514")
	svc.anthropicURL = server.URL

	_, err := svc.Complete(context.Background(), "system", []Message{{Role: "user", Content: "hi"}}, 100)
	if err == nil {
		t.Fatal("expected error on empty content")
	}
}

func TestCallOpenAIPrependsSystem(t *testing.T) {
	var gotReq struct {
		Messages []map[string]string `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer server.Close()

	svc := NewService("openai", "test-key", "gpt-4o-mini")
	svc.openaiURL = server.URL

	reply, err := svc.Complete(context.Background(), "be nice", []Message{{Role: "user", Content: "hi"}}, 100)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if reply != "ok" {
		t.Errorf("reply = %q", reply)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0]["role"] != "system" || gotReq.Messages[0]["content"] != "be nice" {
		t.Errorf("first message = %+v, want the system prompt", gotReq.Messages[0])
	}
}
