package integration

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"turbolearn-ai-be/internal/controller"
	"turbolearn-ai-be/internal/pkg/serverutils"
	"turbolearn-ai-be/internal/service"
	"turbolearn-ai-be/pkg/extract"
	"turbolearn-ai-be/pkg/ingest"
	"turbolearn-ai-be/pkg/llm"
	"turbolearn-ai-be/pkg/topic"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// fakeLLM returns a canned response, or a canned error, and counts calls.
type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

type fakeTranscriber struct{}

func (fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return "transcribed audio", nil
}

type fakeVideoTranscriber struct{}

func (fakeVideoTranscriber) TranscribeVideo(_ context.Context, _ string) (string, error) {
	return "video transcript", nil
}

func newTestAppWithProvider(provider llm.LLMProvider) *fiber.App {
	log := noopLogger{}

	normalizer := ingest.NewNormalizer(
		fakeTranscriber{},
		fakeVideoTranscriber{},
		extract.NewDocumentExtractor(),
		log,
		time.Second,
		2,
	)
	catalog := topic.NewMemoryCatalog(time.Minute)
	// Millisecond backoff keeps the retry path fast under test
	generateService := service.NewGenerateService(normalizer, provider, catalog, log, 8000, time.Millisecond)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	controller.NewSystemController().RegisterRoutes(app)
	controller.NewGenerateController(generateService).RegisterRoutes(app)
	return app
}

func newTestApp(llmResponse string) *fiber.App {
	return newTestAppWithProvider(&fakeLLM{response: llmResponse})
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 10000)
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var parsed map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp("")

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UP", body["status"])
}

func TestModelConfigsEndpoint(t *testing.T) {
	app := newTestApp("")

	req := httptest.NewRequest("GET", "/model-configs", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["modelData"])
	assert.NotEmpty(t, body["toolData"])
}

func TestGenerateNotesFromUpload(t *testing.T) {
	app := newTestApp("# Study Notes\n\nPhotosynthesis explained")

	status, body := postJSON(t, app, "/generate/notes", map[string]interface{}{
		"uploads": []map[string]string{
			{
				"name":     "lecture.txt",
				"mimeType": "text/plain",
				"content":  base64.StdEncoding.EncodeToString([]byte("photosynthesis lecture text")),
			},
		},
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["notes"], "Photosynthesis explained")
	assert.Equal(t, "structured_notes", body["type"])
	assert.Nil(t, body["wasFallback"])

	sources, ok := body["sources"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, sources, 1)
}

func TestGenerateNotesEmptyInput(t *testing.T) {
	app := newTestApp("")

	status, body := postJSON(t, app, "/generate/notes", map[string]interface{}{})

	assert.Equal(t, 400, status)
	assert.NotEmpty(t, body["error"])
	assert.Nil(t, body["success"])
}

func TestGenerateNotesInvalidBase64(t *testing.T) {
	app := newTestApp("")

	status, body := postJSON(t, app, "/generate/notes", map[string]interface{}{
		"uploads": []map[string]string{
			{"name": "bad.txt", "content": "not-base64!!!"},
		},
	})

	assert.Equal(t, 400, status)
	assert.Contains(t, body["error"], "bad.txt")
}

func TestGenerateQuizRoundTrip(t *testing.T) {
	app := newTestApp(`{"title":"Bio Quiz","questions":[{"id":1,"question":"Q?","options":["a","b","c","d"],"correct":2,"explanation":"because"}]}`)

	status, body := postJSON(t, app, "/generate/quiz", map[string]interface{}{
		"notes": "photosynthesis notes",
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["wasFallback"])

	quiz, ok := body["quiz"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Bio Quiz", quiz["title"])
}

func TestGenerateQuizMalformedUpstreamFallsBack(t *testing.T) {
	app := newTestApp("I'm sorry, I can't produce JSON today.")

	status, body := postJSON(t, app, "/generate/quiz", map[string]interface{}{
		"notes": "some notes",
	})

	// Malformed upstream output is never a client error
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["wasFallback"])

	quiz, ok := body["quiz"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Generated Quiz", quiz["title"])
}

func TestGenerateQuizMissingNotes(t *testing.T) {
	app := newTestApp("")

	status, body := postJSON(t, app, "/generate/quiz", map[string]interface{}{})

	assert.Equal(t, 400, status)
	assert.NotEmpty(t, body["error"])
}

func TestGenerateFlashcards(t *testing.T) {
	app := newTestApp(`{"flashcards":[{"id":1,"front":"Mitosis","back":"Cell division"}]}`)

	status, body := postJSON(t, app, "/generate/flashcards", map[string]interface{}{
		"notes": "biology notes",
	})

	assert.Equal(t, 200, status)
	cards, ok := body["flashcards"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, cards, 1)
}

func TestGenerateSummary(t *testing.T) {
	app := newTestApp("A concise summary of the notes.")

	status, body := postJSON(t, app, "/generate/summary", map[string]interface{}{
		"notes": "long rambling notes",
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, "A concise summary of the notes.", body["content"])
	assert.Equal(t, "summary", body["type"])
}

func TestGenerateNotesMultipartUpload(t *testing.T) {
	app := newTestApp("# Study Notes\n\nFrom the uploaded lecture")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("files", "lecture.txt")
	assert.NoError(t, err)
	_, err = part.Write([]byte("photosynthesis lecture transcript"))
	assert.NoError(t, err)
	assert.NoError(t, writer.WriteField("prompt", "focus on the light reactions"))
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/generate/notes", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, 10000)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["notes"], "From the uploaded lecture")

	sources, ok := body["sources"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, sources, 1)
}

func TestGenerateQuizUpstreamFailure(t *testing.T) {
	provider := &fakeLLM{err: errors.New("completion backend unavailable")}
	app := newTestAppWithProvider(provider)

	status, body := postJSON(t, app, "/generate/quiz", map[string]interface{}{
		"notes": "some notes",
	})

	assert.Equal(t, 500, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to generate quiz", body["error"])
	assert.Contains(t, body["details"], "completion backend unavailable")

	// One retry after the first failure, then give up
	assert.Equal(t, 2, provider.calls)
}

func TestDetectIntent(t *testing.T) {
	app := newTestApp("")

	status, body := postJSON(t, app, "/detect-intent", map[string]interface{}{
		"message": "please take notes on this lecture",
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, "note_generation", body["intent"])

	status, body = postJSON(t, app, "/detect-intent", map[string]interface{}{
		"message": "how is the weather",
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, "general_chat", body["intent"])
}
