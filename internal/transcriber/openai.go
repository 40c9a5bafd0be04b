package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultTranscriptionURL = "https://api.openai.com/v1/audio/transcriptions"
	transcriptionModel      = "gpt-4o-transcribe"
	transcriptionTimeout    = 5 * time.Minute
)

// openAIClient wraps the OpenAI audio transcription endpoint.
type openAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newOpenAIClient(apiKey, baseURL string, httpClient *http.Client) *openAIClient {
	if baseURL == "" {
		baseURL = defaultTranscriptionURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: transcriptionTimeout}
	}
	return &openAIClient{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// transcribeFile uploads one audio segment and returns its transcript text.
func (c *openAIClient) transcribeFile(ctx context.Context, audioPath string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("transcribe: api key required")
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: open segment: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("model", transcriptionModel); err != nil {
		return "", fmt.Errorf("transcribe: encode form: %w", err)
	}
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("transcribe: encode form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("transcribe: read segment: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("transcribe: encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return "", fmt.Errorf("transcribe: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe: http error: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("transcribe: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcribe: http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("transcribe: decode response: %w", err)
	}
	return parsed.Text, nil
}
