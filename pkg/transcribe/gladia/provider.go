package gladia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"turbolearn-ai-be/pkg/transcribe"
)

// GladiaProvider transcribes hosted videos through the Gladia pre-recorded
// API. The API is asynchronous: a submission returns an id, the result is
// polled until the job is done.
type GladiaProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client

	pollInterval time.Duration
	maxPolls     int
}

var _ transcribe.VideoTranscriber = &GladiaProvider{}

type submitRequest struct {
	AudioURL       string         `json:"audio_url"`
	LanguageConfig languageConfig `json:"language_config"`
}

type languageConfig struct {
	Languages []string `json:"languages"`
}

type submitResponse struct {
	ID        string `json:"id"`
	ResultURL string `json:"result_url"`
}

type resultResponse struct {
	Status string `json:"status"` // "queued", "processing", "done", "error"
	Result struct {
		Transcription struct {
			FullTranscript string `json:"full_transcript"`
		} `json:"transcription"`
	} `json:"result"`
	ErrorCode string `json:"error_code,omitempty"`
}

func NewGladiaProvider(apiKey, baseURL string) *GladiaProvider {
	if baseURL == "" {
		baseURL = "https://api.gladia.io/v2"
	}
	return &GladiaProvider{
		apiKey:       apiKey,
		baseURL:      baseURL,
		client:       &http.Client{Timeout: 60 * time.Second},
		pollInterval: 3 * time.Second,
		maxPolls:     100,
	}
}

func (p *GladiaProvider) TranscribeVideo(ctx context.Context, videoID string) (string, error) {
	id, err := p.submit(ctx, fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID))
	if err != nil {
		return "", err
	}
	return p.poll(ctx, id)
}

func (p *GladiaProvider) submit(ctx context.Context, audioURL string) (string, error) {
	reqBody := submitRequest{
		AudioURL:       audioURL,
		LanguageConfig: languageConfig{Languages: []string{}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/pre-recorded", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-gladia-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("gladia api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var submitted submitResponse
	if err := json.Unmarshal(bodyBytes, &submitted); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if submitted.ID == "" {
		return "", fmt.Errorf("gladia api returned no transcription id")
	}

	return submitted.ID, nil
}

func (p *GladiaProvider) poll(ctx context.Context, id string) (string, error) {
	url := fmt.Sprintf("%s/pre-recorded/%s", p.baseURL, id)

	for i := 0; i < p.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("x-gladia-key", p.apiKey)

		resp, err := p.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("request failed: %w", err)
		}
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("gladia api error (status %d): %s", resp.StatusCode, string(bodyBytes))
		}

		var result resultResponse
		if err := json.Unmarshal(bodyBytes, &result); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}

		switch result.Status {
		case "done":
			return result.Result.Transcription.FullTranscript, nil
		case "error":
			return "", fmt.Errorf("gladia transcription failed: %s", result.ErrorCode)
		}
		// "queued" / "processing": keep polling
	}

	return "", fmt.Errorf("gladia transcription %s did not complete in time", id)
}
