package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/boardroom-simulator/pkg/config"
)

func TestCompleteReturnsAssistantContent(t *testing.T) {
	var gotAuth string
	var gotReq ChatRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "the verdict"}},
			},
		})
	}))
	defer ts.Close()

	client := NewNarrativeClient(&config.NarrativeConfig{
		APIKey:  "test-key",
		BaseURL: ts.URL,
		Model:   "test-model",
	})

	content, err := client.Complete(context.Background(), "evaluate this")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "the verdict" {
		t.Errorf("expected assistant content, got %q", content)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("unexpected model %q", gotReq.Model)
	}
}

func TestCompleteSurfacesHTTPErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewNarrativeClient(&config.NarrativeConfig{APIKey: "k", BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	client := NewNarrativeClient(&config.NarrativeConfig{APIKey: "k", BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
