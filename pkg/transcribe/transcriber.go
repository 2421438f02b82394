package transcribe

import "context"

// Transcriber converts raw audio bytes into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// VideoTranscriber fetches the transcript of an externally hosted video,
// keyed by its stable identifier (e.g. a YouTube video ID).
type VideoTranscriber interface {
	TranscribeVideo(ctx context.Context, videoID string) (string, error)
}
