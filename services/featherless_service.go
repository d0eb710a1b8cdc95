package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"backend/utils"
)

const featherlessBaseURL = "https://api.featherless.ai/v1"

// FeatherlessService talks to an OpenAI-compatible chat-completions gateway.
type FeatherlessService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewFeatherlessService() *FeatherlessService {
	return &FeatherlessService{
		baseURL: featherlessBaseURL,
		apiKey:  os.Getenv("FEATHERLESS_API_KEY"),
		model:   os.Getenv("FEATHERLESS_MODEL"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type ChatMessage struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// ChatCompletion sends the messages and returns the model's text. Transport
// failures and non-200 statuses wrap ErrUpstreamUnavailable so callers can
// degrade instead of crashing.
func (s *FeatherlessService) ChatCompletion(ctx context.Context, messages []ChatMessage, maxTokens int) (string, error) {
	if s.apiKey == "" || s.model == "" {
		return "", fmt.Errorf("featherless API key or model not configured")
	}

	body := map[string]any{
		"model":       s.model,
		"messages":    messages,
		"temperature": 0.2,
		"max_tokens":  maxTokens,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: featherless call: %v", utils.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: featherless status %d: %s", utils.ErrUpstreamUnavailable, resp.StatusCode, data)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices from featherless")
	}
	return result.Choices[0].Message.Content, nil
}
