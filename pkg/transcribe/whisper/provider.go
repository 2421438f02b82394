package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"turbolearn-ai-be/pkg/transcribe"
)

// WhisperProvider transcribes audio through the OpenAI audio API.
type WhisperProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ transcribe.Transcriber = &WhisperProvider{}

type transcriptionResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewWhisperProvider(apiKey, baseURL string) *WhisperProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &WhisperProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   "whisper-1",
		client:  &http.Client{Timeout: 300 * time.Second},
	}
}

func (p *WhisperProvider) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if filename == "" {
		filename = "audio.mp3"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio payload: %w", err)
	}
	if err := writer.WriteField("model", p.model); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/audio/transcriptions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var transcription transcriptionResponse
	if err := json.Unmarshal(bodyBytes, &transcription); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if transcription.Error != nil {
		return "", fmt.Errorf("whisper api returned error: %s", transcription.Error.Message)
	}

	return transcription.Text, nil
}
