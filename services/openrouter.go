package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/jakobos/10x-cards/shared"
)

// OpenRouterService is the structured-generation client: it sends
// chat-completion requests with a strict JSON schema on the response format
// and maps every failure to the shared taxonomy. It performs no retries;
// retry policy belongs to callers.
type OpenRouterService struct {
	appContext.DefaultService

	httpClient   *http.Client
	apiKey       string
	baseURL      string
	defaultModel string
}

const OPENROUTER_SVC = "openrouter_svc"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

func (svc OpenRouterService) Id() string {
	return OPENROUTER_SVC
}

func (svc *OpenRouterService) Configure(ctx *appContext.Context) error {
	svc.apiKey = os.Getenv("OPENROUTER_API_KEY")
	if svc.apiKey == "" {
		return errors.New("OPENROUTER_API_KEY environment variable is not set")
	}

	svc.baseURL = os.Getenv("OPENROUTER_BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = defaultOpenRouterBaseURL
	}

	svc.defaultModel = "openai/gpt-4o-mini"
	svc.httpClient = &http.Client{
		Timeout: 60 * time.Second,
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *OpenRouterService) Start() error {
	return nil
}

// GenerationParams describes one structured-generation request.
type GenerationParams struct {
	SystemPrompt string
	UserPrompt   string

	// JSONSchema constrains the model output; sent with strict enforcement.
	JSONSchema map[string]interface{}

	// Model overrides the default when non-empty.
	Model string

	Temperature *float64
	MaxTokens   int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    *float64       `json:"temperature,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
}

type responseFormat struct {
	Type       string         `json:"type"`
	JSONSchema jsonSchemaSpec `json:"json_schema"`
}

type jsonSchemaSpec struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateJSON sends the request and unmarshals the schema-constrained
// message content into out.
func (svc *OpenRouterService) GenerateJSON(ctx context.Context, params GenerationParams, out interface{}) error {
	model := params.Model
	if model == "" {
		model = svc.defaultModel
	}

	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: params.SystemPrompt},
			{Role: "user", Content: params.UserPrompt},
		},
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchemaSpec{
				Name:   "custom_json_schema",
				Strict: true,
				Schema: params.JSONSchema,
			},
		},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return &shared.BadRequestError{Message: fmt.Sprintf("Failed to encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return &shared.NetworkError{Message: fmt.Sprintf("Failed to build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+svc.apiKey)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		return &shared.NetworkError{Message: fmt.Sprintf("Network error: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return svc.mapErrorResponse(resp)
	}

	return svc.parseResponse(resp.Body, out)
}

func (svc *OpenRouterService) mapErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &shared.AuthenticationError{Message: "Authentication failed. Please check your OPENROUTER_API_KEY."}

	case http.StatusTooManyRequests:
		return &shared.RateLimitError{Message: "Rate limit exceeded. Please wait before making more requests."}

	case http.StatusBadRequest:
		// Surface the provider detail when the body carries one.
		var detail providerError
		if body, err := io.ReadAll(resp.Body); err == nil {
			if err := json.Unmarshal(body, &detail); err == nil && detail.Error.Message != "" {
				return &shared.BadRequestError{Message: "Bad request: " + detail.Error.Message}
			}
		}
		return &shared.BadRequestError{Message: "Bad request. Invalid parameters."}

	default:
		return &shared.ServerError{Message: fmt.Sprintf("Model provider error (%d). Please try again later.", resp.StatusCode)}
	}
}

func (svc *OpenRouterService) parseResponse(body io.Reader, out interface{}) error {
	var response chatResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return &shared.ParsingError{Message: fmt.Sprintf("Failed to decode API response: %v", err)}
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return &shared.ParsingError{Message: "Invalid response structure from API. Missing message content."}
	}

	content := response.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), out); err != nil {
		// The raw content may contain user material; log its size only.
		log.WithField("content_length", len(content)).Error("Model response was not valid JSON")
		return &shared.ParsingError{Message: fmt.Sprintf("Failed to parse the model's response as JSON: %v", err)}
	}

	return nil
}
