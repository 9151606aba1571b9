package audio

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Accepted Content-Type values, matched as substrings so parameters like
// "audio/mpeg; charset=binary" still pass.
var audioContentTypes = []string{
	"audio/mpeg",
	"audio/mp3",
	"audio/wav",
	"audio/flac",
	"audio/m4a",
	"audio/mp4",
	"audio/ogg",
	"audio/webm",
}

// ValidationError describes why a recording URL failed the pre-flight
// probe. The reason text is stored inline in the record, so it stays
// human-readable.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validator probes a recording URL before any transcription budget is
// spent: the URL must answer 200 to a HEAD request and declare an audio
// content type.
type Validator struct {
	client *http.Client
}

func NewValidator(client *http.Client) *Validator {
	if client == nil {
		client = &http.Client{Timeout: 12 * time.Second}
	}
	return &Validator{client: client}
}

// Check issues a metadata-only request; no audio bytes are downloaded.
// A single attempt, no retries.
func (v *Validator) Check(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ValidationError{Reason: fmt.Sprintf("URL not accessible (status code: %d)", resp.StatusCode)}
	}

	contentType := resp.Header.Get("Content-Type")
	for _, t := range audioContentTypes {
		if strings.Contains(contentType, t) {
			return nil
		}
	}
	return &ValidationError{Reason: fmt.Sprintf("Invalid content type (%s); expected audio format (e.g., MP3, WAV)", contentType)}
}
