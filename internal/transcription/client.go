package transcription

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
	deepgramDefaultBaseURL = "https://api.deepgram.com"
	deepgramModel          = "nova-3"
	deepgramLanguage       = "en"
)

// Error is a transcription failure. Its Error() text is the exact string
// stored in the record's Transcription field, so failures stay legible to
// a human reviewer.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "Transcription Error: " + e.Reason
}

// ErrorString renders any error the way it is stored in a record.
func ErrorString(err error) string {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Error()
	}
	return "Transcription Error: " + err.Error()
}

type listenRequest struct {
	URL      string `json:"url"`
	Model    string `json:"model"`
	Language string `json:"language"`
}

type listenResponse struct {
	Results *struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Client wraps the Deepgram pre-recorded audio API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, baseURL string, client *http.Client) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("deepgram api key is empty")
	}
	if baseURL == "" {
		baseURL = deepgramDefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: baseURL, client: client}, nil
}

// Transcribe submits the audio URL for English decoding with the fixed
// recognition model and returns the first channel's top alternative.
// Single attempt per call; every failure comes back as *Error.
func (c *Client) Transcribe(ctx context.Context, audioURL string) (string, error) {
	payload, err := json.Marshal(listenRequest{URL: audioURL, Model: deepgramModel, Language: deepgramLanguage})
	if err != nil {
		return "", &Error{Reason: err.Error()}
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/v1/listen"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Reason: err.Error()}
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Error{Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &Error{Reason: fmt.Sprintf("Deepgram API request failed (status code: %d) - %s", resp.StatusCode, string(body))}
	}

	var parsed listenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &Error{Reason: "Invalid response from Deepgram API"}
	}
	if parsed.Results == nil || len(parsed.Results.Channels) == 0 {
		return "", &Error{Reason: "Invalid response from Deepgram API"}
	}
	alternatives := parsed.Results.Channels[0].Alternatives
	if len(alternatives) == 0 {
		return "", &Error{Reason: "Invalid response from Deepgram API"}
	}

	transcript := alternatives[0].Transcript
	if transcript == "" {
		return "", &Error{Reason: "Empty transcript returned"}
	}
	return transcript, nil
}
