package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, f.err
}

type fakeVideoTranscriber struct {
	transcripts map[string]string
	err         error
}

func (f *fakeVideoTranscriber) TranscribeVideo(_ context.Context, videoID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.transcripts[videoID], nil
}

type fakeExtractor struct {
	failFor map[string]error
}

func (f *fakeExtractor) ExtractText(data []byte, originalName, _ string) (string, error) {
	if err, ok := f.failFor[originalName]; ok {
		return "", err
	}
	return fmt.Sprintf("extracted %s", originalName), nil
}

func newTestNormalizer(tr *fakeTranscriber, vt *fakeVideoTranscriber, ex *fakeExtractor) *Normalizer {
	if tr == nil {
		tr = &fakeTranscriber{text: "transcript"}
	}
	if vt == nil {
		vt = &fakeVideoTranscriber{transcripts: map[string]string{}}
	}
	if ex == nil {
		ex = &fakeExtractor{}
	}
	return NewNormalizer(tr, vt, ex, noopLogger{}, time.Second, 4)
}

func TestBuildContextEmptyInput(t *testing.T) {
	n := newTestNormalizer(nil, nil, nil)

	_, err := n.BuildContext(context.Background(), nil, nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestBuildContextPreservesInputOrder(t *testing.T) {
	n := newTestNormalizer(nil, nil, nil)

	uploads := []Upload{
		{Data: []byte("a"), OriginalName: "first.pdf", MimeType: "application/pdf"},
	}
	items := []Item{
		{Kind: KindUploadedFile, DisplayName: "second.txt", DeclaredType: TypeDocument, Data: []byte("b")},
		{Kind: KindUploadedFile, DisplayName: "third.txt", DeclaredType: TypeDocument, Data: []byte("c")},
	}

	got, err := n.BuildContext(context.Background(), items, uploads)
	if err != nil {
		t.Fatalf("BuildContext error: %v", err)
	}

	if len(got.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(got.Results))
	}
	wantOrder := []string{"first.pdf", "second.txt", "third.txt"}
	for i, name := range wantOrder {
		if got.Results[i].SourceName != name {
			t.Errorf("result[%d] = %q, want %q", i, got.Results[i].SourceName, name)
		}
	}

	// Assembled text follows the same order as the result set.
	firstIdx := strings.Index(got.Text, "first.pdf")
	secondIdx := strings.Index(got.Text, "second.txt")
	thirdIdx := strings.Index(got.Text, "third.txt")
	if firstIdx < 0 || secondIdx < 0 || thirdIdx < 0 {
		t.Fatalf("assembled text missing sources: %q", got.Text)
	}
	if !(firstIdx < secondIdx && secondIdx < thirdIdx) {
		t.Errorf("assembled text out of order: %q", got.Text)
	}
}

func TestBuildContextPartialFailureIsolated(t *testing.T) {
	ex := &fakeExtractor{failFor: map[string]error{
		"broken.pdf": errors.New("corrupt file"),
	}}
	n := newTestNormalizer(nil, nil, ex)

	items := []Item{
		{Kind: KindUploadedFile, DisplayName: "good.txt", DeclaredType: TypeDocument, Data: []byte("x")},
		{Kind: KindUploadedFile, DisplayName: "broken.pdf", DeclaredType: TypePDF, Data: []byte("y")},
	}

	got, err := n.BuildContext(context.Background(), items, nil)
	if err != nil {
		t.Fatalf("BuildContext error: %v", err)
	}

	if len(got.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(got.Results))
	}
	if !got.Results[0].OK() {
		t.Errorf("good.txt should succeed, got %v", got.Results[0].Err)
	}
	if got.Results[1].OK() {
		t.Error("broken.pdf should carry its error")
	}
	if !strings.Contains(got.Text, "good.txt") {
		t.Errorf("assembled text missing surviving source: %q", got.Text)
	}
	if strings.Contains(got.Text, "broken.pdf") {
		t.Errorf("failed source leaked into assembled text: %q", got.Text)
	}
}

func TestBuildContextAllFailed(t *testing.T) {
	ex := &fakeExtractor{failFor: map[string]error{
		"a.pdf": errors.New("bad"),
		"b.pdf": errors.New("bad"),
	}}
	n := newTestNormalizer(nil, nil, ex)

	items := []Item{
		{Kind: KindUploadedFile, DisplayName: "a.pdf", DeclaredType: TypePDF, Data: []byte("x")},
		{Kind: KindUploadedFile, DisplayName: "b.pdf", DeclaredType: TypePDF, Data: []byte("y")},
	}

	_, err := n.BuildContext(context.Background(), items, nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestBuildContextUnknownTypeStub(t *testing.T) {
	n := newTestNormalizer(nil, nil, nil)

	items := []Item{
		{
			Kind:         KindUploadedFile,
			DisplayName:  "archive.zip",
			DeclaredType: TypeUnknown,
			Data:         []byte("0123456789"),
			MimeType:     "application/zip",
		},
	}

	got, err := n.BuildContext(context.Background(), items, nil)
	if err != nil {
		t.Fatalf("BuildContext error: %v", err)
	}
	if !got.Results[0].OK() {
		t.Fatalf("unknown type should degrade, not fail: %v", got.Results[0].Err)
	}
	want := "[file: archive.zip, type: application/zip, size: 10 bytes]"
	if !strings.Contains(got.Text, want) {
		t.Errorf("text = %q, want substring %q", got.Text, want)
	}
}

func TestBuildContextVideoRef(t *testing.T) {
	vt := &fakeVideoTranscriber{transcripts: map[string]string{
		"dQw4w9WgXcQ": "lecture transcript",
	}}
	n := newTestNormalizer(nil, vt, nil)

	items := []Item{
		{
			Kind:         KindVideoRef,
			DisplayName:  "lecture",
			DeclaredType: TypeVideo,
			URL:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
	}

	got, err := n.BuildContext(context.Background(), items, nil)
	if err != nil {
		t.Fatalf("BuildContext error: %v", err)
	}
	if !strings.Contains(got.Text, "lecture transcript") {
		t.Errorf("text = %q, want video transcript", got.Text)
	}
}

func TestBuildContextInvalidVideoReference(t *testing.T) {
	n := newTestNormalizer(nil, nil, nil)

	items := []Item{
		{Kind: KindVideoRef, DisplayName: "bad", DeclaredType: TypeVideo, URL: "https://vimeo.com/1"},
		{Kind: KindUploadedFile, DisplayName: "ok.txt", DeclaredType: TypeDocument, Data: []byte("x")},
	}

	got, err := n.BuildContext(context.Background(), items, nil)
	if err != nil {
		t.Fatalf("BuildContext error: %v", err)
	}
	if got.Results[0].OK() {
		t.Error("invalid video reference should fail its own item")
	}
	if !errors.Is(got.Results[0].Err, ErrInvalidReference) {
		t.Errorf("err = %v, want ErrInvalidReference", got.Results[0].Err)
	}
	if !got.Results[1].OK() {
		t.Errorf("sibling item should survive, got %v", got.Results[1].Err)
	}
}

func TestBuildContextAudioTranscription(t *testing.T) {
	tr := &fakeTranscriber{text: "spoken words"}
	n := newTestNormalizer(tr, nil, nil)

	uploads := []Upload{
		{Data: []byte("riff"), OriginalName: "memo.mp3", MimeType: "audio/mpeg"},
	}

	got, err := n.BuildContext(context.Background(), nil, uploads)
	if err != nil {
		t.Fatalf("BuildContext error: %v", err)
	}
	if !strings.Contains(got.Text, "spoken words") {
		t.Errorf("text = %q, want transcript", got.Text)
	}
	if !strings.Contains(got.Text, "--- memo.mp3 (audio) ---") {
		t.Errorf("text = %q, want source delimiter", got.Text)
	}
}

func TestDeclaredTypeFor(t *testing.T) {
	tests := []struct {
		mime string
		name string
		want DeclaredType
	}{
		{"audio/mpeg", "a.mp3", TypeAudio},
		{"application/pdf", "doc.pdf", TypePDF},
		{"text/plain", "notes.txt", TypeDocument},
		{"", "recording.wav", TypeAudio},
		{"", "paper.pdf", TypePDF},
		{"", "readme.md", TypeDocument},
		{"application/zip", "a.zip", TypeDocument},
		{"", "a.zip", TypeUnknown},
		{"", "mystery", TypeUnknown},
	}

	for _, tt := range tests {
		if got := DeclaredTypeFor(tt.mime, tt.name); got != tt.want {
			t.Errorf("DeclaredTypeFor(%q, %q) = %q, want %q", tt.mime, tt.name, got, tt.want)
		}
	}
}
