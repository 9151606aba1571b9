package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openAIDefaultBaseURL = "https://api.openai.com"
	openAIDefaultModel   = "gpt-3.5-turbo"
	maxReviewTokens      = 500
)

// Error is a review failure. Like transcription errors, its Error() text
// is the exact string stored in the record's Review field.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "Review Error: API Error - " + e.Reason
}

// ErrorString renders any error the way it is stored in a record.
func ErrorString(err error) string {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Error()
	}
	return "Review Error: API Error - " + err.Error()
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client wraps the chat-completions API behind the fixed QA prompt.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewClient(apiKey, baseURL, model string, client *http.Client) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is empty")
	}
	if baseURL == "" {
		baseURL = openAIDefaultBaseURL
	}
	if model == "" {
		model = openAIDefaultModel
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: baseURL, model: model, client: client}, nil
}

// Review produces the one-line compliance review for a transcript and
// customer name. The review is opaque model output, returned trimmed.
// Single attempt per call; every failure comes back as *Error.
func (c *Client) Review(ctx context.Context, transcript, customerName string) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(transcript, customerName)},
		},
		MaxTokens: maxReviewTokens,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", &Error{Reason: err.Error()}
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Reason: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Error{Reason: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &Error{Reason: fmt.Sprintf("request failed (status code: %d) - %s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &Error{Reason: fmt.Sprintf("invalid response: %v", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &Error{Reason: "response has no choices"}
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
