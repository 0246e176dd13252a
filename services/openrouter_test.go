package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jakobos/10x-cards/shared"
)

func testOpenRouter(baseURL string) *OpenRouterService {
	return &OpenRouterService{
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		apiKey:       "test-key",
		baseURL:      baseURL,
		defaultModel: "openai/gpt-4o-mini",
	}
}

func chatCompletionBody(content string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestOpenRouter_GenerateJSON(t *testing.T) {
	t.Parallel()

	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(chatCompletionBody(`{"answer":"42"}`)))
	}))
	defer server.Close()

	svc := testOpenRouter(server.URL)
	temp := 0.7
	var out struct {
		Answer string `json:"answer"`
	}
	err := svc.GenerateJSON(context.Background(), GenerationParams{
		SystemPrompt: "system",
		UserPrompt:   "user",
		JSONSchema:   map[string]interface{}{"type": "object"},
		Temperature:  &temp,
		MaxTokens:    100,
	}, &out)
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if out.Answer != "42" {
		t.Fatalf("content not unmarshalled, got %+v", out)
	}

	if captured.Model != "openai/gpt-4o-mini" {
		t.Fatalf("default model not applied, got %s", captured.Model)
	}
	if captured.ResponseFormat.Type != "json_schema" {
		t.Fatalf("wrong response_format type: %s", captured.ResponseFormat.Type)
	}
	if !captured.ResponseFormat.JSONSchema.Strict {
		t.Fatalf("schema must be sent with strict enforcement")
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
	if captured.Temperature == nil || *captured.Temperature != 0.7 {
		t.Fatalf("temperature not forwarded")
	}
}

func TestOpenRouter_ErrorTaxonomy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name:   "401 authentication",
			status: http.StatusUnauthorized,
			check: func(err error) bool {
				var e *shared.AuthenticationError
				return errors.As(err, &e)
			},
		},
		{
			name:   "429 rate limit",
			status: http.StatusTooManyRequests,
			check: func(err error) bool {
				var e *shared.RateLimitError
				return errors.As(err, &e)
			},
		},
		{
			name:   "400 bad request",
			status: http.StatusBadRequest,
			check: func(err error) bool {
				var e *shared.BadRequestError
				return errors.As(err, &e)
			},
		},
		{
			name:   "500 server",
			status: http.StatusInternalServerError,
			check: func(err error) bool {
				var e *shared.ServerError
				return errors.As(err, &e)
			},
		},
		{
			name:   "503 server",
			status: http.StatusServiceUnavailable,
			check: func(err error) bool {
				var e *shared.ServerError
				return errors.As(err, &e)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			svc := testOpenRouter(server.URL)
			var out map[string]interface{}
			err := svc.GenerateJSON(context.Background(), GenerationParams{}, &out)
			if err == nil {
				t.Fatalf("expected error for status %d", tc.status)
			}
			if !tc.check(err) {
				t.Fatalf("wrong error type for status %d: %T", tc.status, err)
			}
		})
	}
}

func TestOpenRouter_BadRequestDetailExtracted(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"schema too deep"}}`))
	}))
	defer server.Close()

	svc := testOpenRouter(server.URL)
	var out map[string]interface{}
	err := svc.GenerateJSON(context.Background(), GenerationParams{}, &out)

	var badErr *shared.BadRequestError
	if !errors.As(err, &badErr) {
		t.Fatalf("expected BadRequestError, got %T", err)
	}
	if badErr.Message != "Bad request: schema too deep" {
		t.Fatalf("provider detail not surfaced: %q", badErr.Message)
	}
}

func TestOpenRouter_ParsingErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"empty choices", `{"choices":[]}`},
		{"empty content", chatCompletionBody("")},
		{"non-json content", chatCompletionBody("sure, here are your flashcards:")},
		{"invalid envelope", `not json at all`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			svc := testOpenRouter(server.URL)
			var out map[string]interface{}
			err := svc.GenerateJSON(context.Background(), GenerationParams{}, &out)

			var parseErr *shared.ParsingError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParsingError, got %T (%v)", err, err)
			}
		})
	}
}

func TestOpenRouter_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	svc := testOpenRouter(server.URL)
	var out map[string]interface{}
	err := svc.GenerateJSON(context.Background(), GenerationParams{}, &out)

	var netErr *shared.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T (%v)", err, err)
	}
}

func TestOpenRouter_ModelOverride(t *testing.T) {
	t.Parallel()

	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(chatCompletionBody(`{}`)))
	}))
	defer server.Close()

	svc := testOpenRouter(server.URL)
	var out map[string]interface{}
	if err := svc.GenerateJSON(context.Background(), GenerationParams{Model: "anthropic/claude-3-haiku"}, &out); err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if captured.Model != "anthropic/claude-3-haiku" {
		t.Fatalf("model override not applied, got %s", captured.Model)
	}
}
