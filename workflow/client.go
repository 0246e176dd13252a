package workflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/jakobos/10x-cards/dto"
)

// Client implements Backend against the HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

func (c *Client) GenerateCandidates(ctx context.Context, deckID, sourceText string) (*dto.GenerateFlashcardsResponse, error) {
	req := dto.GenerateFlashcardsRequest{
		SourceText: sourceText,
		DeckID:     deckID,
	}

	var resp dto.GenerateFlashcardsResponse
	if err := c.post(ctx, "/api/ai/generate-flashcards", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SubmitFlashcards(ctx context.Context, deckID string, req dto.BatchCreateFlashcardsRequest) (*dto.BatchCreateFlashcardsResponse, error) {
	var resp dto.BatchCreateFlashcardsResponse
	if err := c.post(ctx, fmt.Sprintf("/api/decks/%s/flashcards/batch", deckID), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, raw)
	}

	return sonic.Unmarshal(raw, out)
}

// apiError surfaces the server's message when one is present, falling
// back to the status code.
func apiError(status int, raw []byte) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := sonic.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return fmt.Errorf("%s", body.Message)
		}
		if body.Error != "" {
			return fmt.Errorf("%s", body.Error)
		}
	}
	return fmt.Errorf("request failed with status %d", status)
}
