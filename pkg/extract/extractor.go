package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls plain text out of an uploaded document.
type TextExtractor interface {
	ExtractText(data []byte, originalName, mimeHint string) (string, error)
}

const supportedFormats = "pdf, txt, md"

// DocumentExtractor sniffs the real file type from its bytes before
// extracting; declared MIME types from clients are frequently wrong.
type DocumentExtractor struct{}

var _ TextExtractor = &DocumentExtractor{}

func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

func (e *DocumentExtractor) ExtractText(data []byte, originalName, mimeHint string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file: %s", originalName)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	mt := strings.ToLower(strings.TrimSpace(mimeHint))

	// Magic bytes first, declared type second
	if isPDF(data) {
		return extractPDF(data)
	}
	if mt == "application/pdf" || ext == ".pdf" {
		return "", fmt.Errorf("file %s claims pdf but lacks a %%PDF header", originalName)
	}

	if isProbablyText(data) || strings.HasPrefix(mt, "text/") || ext == ".txt" || ext == ".md" || ext == ".markdown" {
		return collapseWhitespace(string(data)), nil
	}

	return "", fmt.Errorf("unsupported document format for %s (supported: %s)", originalName, supportedFormats)
}

func isPDF(b []byte) bool {
	// PDF starts with "%PDF-"
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isProbablyText(b []byte) bool {
	// Mostly printable/whitespace bytes and no NULs
	n := len(b)
	if n > 4096 {
		n = 4096
	}
	sample := b[:n]
	good := 0
	for _, c := range sample {
		if c == 0x00 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			good++
		}
	}
	return float64(good)/float64(len(sample)) > 0.9
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

var multiBlank = regexp.MustCompile(`\n{3,}`)

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = multiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
