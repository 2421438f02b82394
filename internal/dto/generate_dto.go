package dto

import (
	"turbolearn-ai-be/pkg/ai/coerce"
)

// InlineUpload is a file embedded in a JSON request body. Content is
// base64-encoded; multipart uploads bypass this shape entirely.
type InlineUpload struct {
	Name     string `json:"name" validate:"required"`
	MimeType string `json:"mimeType"`
	Content  string `json:"content" validate:"required"`
}

// FileRef points at a remotely hosted file to be downloaded and extracted.
type FileRef struct {
	URL          string `json:"url" validate:"required,url"`
	Name         string `json:"name"`
	DeclaredType string `json:"declaredType"`
}

type GenerateNotesRequest struct {
	Uploads  []InlineUpload `json:"uploads" validate:"dive"`
	FileRefs []FileRef      `json:"fileRefs" validate:"dive"`
	VideoURL string         `json:"videoUrl"`
	Prompt   string         `json:"prompt"`
}

// SourceResult reports per-item extraction provenance back to the client.
type SourceResult struct {
	Name  string `json:"name"`
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type GenerateNotesResponse struct {
	Success     bool           `json:"success"`
	Content     string         `json:"content"`
	Notes       string         `json:"notes"`
	Type        string         `json:"type"`
	Timestamp   int64          `json:"timestamp"`
	Sources     []SourceResult `json:"sources,omitempty"`
	WasFallback bool           `json:"wasFallback,omitempty"`
}

type GenerateFromNotesRequest struct {
	Notes string `json:"notes" validate:"required"`
}

type GenerateQuizResponse struct {
	Success     bool        `json:"success"`
	Quiz        coerce.Quiz `json:"quiz"`
	Type        string      `json:"type"`
	WasFallback bool        `json:"wasFallback,omitempty"`
}

type GenerateFlashcardsResponse struct {
	Success     bool               `json:"success"`
	Flashcards  []coerce.Flashcard `json:"flashcards"`
	Type        string             `json:"type"`
	WasFallback bool               `json:"wasFallback,omitempty"`
}

type GenerateSummaryResponse struct {
	Success     bool   `json:"success"`
	Content     string `json:"content"`
	Type        string `json:"type"`
	WasFallback bool   `json:"wasFallback,omitempty"`
}

type DetectIntentRequest struct {
	Message string `json:"message" validate:"required"`
}

type DetectIntentResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Model capability descriptors served by /model-configs. Static passthrough.
type ModelConfig struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxTokens   int    `json:"maxTokens"`
	IsActive    bool   `json:"isActive"`
}

type ToolConfig struct {
	Id          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    bool   `json:"isActive"`
	Category    string `json:"category"`
}

type ModelConfigsResponse struct {
	ModelData []ModelConfig `json:"modelData"`
	ToolData  []ToolConfig  `json:"toolData"`
}
