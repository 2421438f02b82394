package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"turbolearn-ai-be/internal/pkg/logger"
	"turbolearn-ai-be/pkg/extract"
	"turbolearn-ai-be/pkg/transcribe"
)

// Normalizer turns heterogeneous request input into one Context. It is
// stateless between calls; all capability dependencies are injected.
type Normalizer struct {
	transcriber      transcribe.Transcriber
	videoTranscriber transcribe.VideoTranscriber
	extractor        extract.TextExtractor
	log              logger.ILogger

	httpClient     *http.Client
	maxConcurrency int
	tempDir        string
}

func NewNormalizer(
	transcriber transcribe.Transcriber,
	videoTranscriber transcribe.VideoTranscriber,
	extractor extract.TextExtractor,
	log logger.ILogger,
	downloadTimeout time.Duration,
	maxConcurrency int,
) *Normalizer {
	if downloadTimeout <= 0 {
		downloadTimeout = 30 * time.Second
	}
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	return &Normalizer{
		transcriber:      transcriber,
		videoTranscriber: videoTranscriber,
		extractor:        extractor,
		log:              log,
		httpClient:       &http.Client{Timeout: downloadTimeout},
		maxConcurrency:   maxConcurrency,
		tempDir:          os.TempDir(),
	}
}

// BuildContext processes all inputs and assembles their extracted text in
// input order (inline uploads first, then items). Per-item failures are
// recorded in the result set and never abort the batch. It returns
// ErrEmptyInput when there is nothing to process, or when every extraction
// failed and the assembled text is empty.
func (n *Normalizer) BuildContext(ctx context.Context, items []Item, uploads []Upload) (*Context, error) {
	all := make([]Item, 0, len(uploads)+len(items))
	for _, u := range uploads {
		all = append(all, Item{
			Kind:         KindUploadedFile,
			DisplayName:  u.OriginalName,
			DeclaredType: DeclaredTypeFor(u.MimeType, u.OriginalName),
			Data:         u.Data,
			MimeType:     u.MimeType,
		})
	}
	all = append(all, items...)

	if len(all) == 0 {
		return nil, ErrEmptyInput
	}

	// Fan-out: items are independent, so extraction runs concurrently.
	// Output order is fixed by input index, not completion order.
	results := make([]ExtractionResult, len(all))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.maxConcurrency)

	for i, item := range all {
		g.Go(func() error {
			results[i] = n.processItem(gctx, item)
			return nil
		})
	}
	// Workers never return errors; per-item failures live in the results.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, res := range results {
		if !res.OK() || strings.TrimSpace(res.Text) == "" {
			continue
		}
		sb.WriteString(res.Text)
		sb.WriteString("\n\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("%w: all %d extractions failed or were empty", ErrEmptyInput, len(all))
	}

	return &Context{Text: text, Results: results}, nil
}

func (n *Normalizer) processItem(ctx context.Context, item Item) ExtractionResult {
	res := ExtractionResult{SourceName: item.DisplayName}

	switch item.Kind {
	case KindVideoRef:
		text, err := n.processVideo(ctx, item)
		res.Text, res.Err = text, err

	case KindRemoteFileRef:
		data, err := n.download(ctx, item.URL)
		if err != nil {
			res.Err = fmt.Errorf("download %s: %w", item.DisplayName, err)
			break
		}
		item.Data = data
		res.Text, res.Err = n.extract(ctx, item)

	default: // KindUploadedFile
		res.Text, res.Err = n.extract(ctx, item)
	}

	if res.Err != nil {
		n.log.Warn("ingest", "Extraction failed", map[string]interface{}{
			"source": item.DisplayName,
			"type":   string(item.DeclaredType),
			"error":  res.Err.Error(),
		})
	}
	if res.OK() && res.Text != "" {
		res.Text = delimit(item, res.Text)
	}
	return res
}

func (n *Normalizer) extract(ctx context.Context, item Item) (string, error) {
	switch item.DeclaredType {
	case TypeAudio:
		text, err := n.transcriber.Transcribe(ctx, item.Data, item.DisplayName)
		if err != nil {
			// Preserve the upstream message for diagnostics
			return "", fmt.Errorf("transcription of %s: %w", item.DisplayName, err)
		}
		return text, nil

	case TypePDF, TypeDocument:
		return n.extractor.ExtractText(item.Data, item.DisplayName, item.MimeType)

	default:
		// Degraded but successful: unknown formats contribute a metadata stub
		return fmt.Sprintf("[file: %s, type: %s, size: %d bytes]",
			item.DisplayName, orUnknown(item.MimeType), len(item.Data)), nil
	}
}

func (n *Normalizer) processVideo(ctx context.Context, item Item) (string, error) {
	videoID, err := ExtractVideoID(item.URL)
	if err != nil {
		return "", err
	}
	text, err := n.videoTranscriber.TranscribeVideo(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("video transcript %s: %w", videoID, err)
	}
	return text, nil
}

// download fetches a remote file through a temp copy, which is removed on
// every exit path.
func (n *Normalizer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmpPath := filepath.Join(n.tempDir, "ingest-"+uuid.NewString())
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	return os.ReadFile(tmpPath)
}

func delimit(item Item, text string) string {
	return fmt.Sprintf("--- %s (%s) ---\n%s", item.DisplayName, item.DeclaredType, text)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
