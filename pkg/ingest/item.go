package ingest

import (
	"errors"
	"path/filepath"
	"strings"
)

// Sentinel errors shared between the pipeline and the HTTP layer.
var (
	// ErrEmptyInput: no content supplied, or every extraction failed and the
	// assembled context is empty. Callers must reject the request instead of
	// calling the generator with nothing.
	ErrEmptyInput = errors.New("no usable input content provided")

	// ErrInvalidReference: a video URL matching no known pattern. Recorded
	// per-item, never fatal for the batch.
	ErrInvalidReference = errors.New("unrecognized video reference")
)

type Kind int

const (
	KindUploadedFile Kind = iota
	KindRemoteFileRef
	KindVideoRef
)

// DeclaredType is the extraction-strategy hint for an item, derived from the
// MIME type or an explicit request field.
type DeclaredType string

const (
	TypeAudio    DeclaredType = "audio"
	TypePDF      DeclaredType = "pdf"
	TypeDocument DeclaredType = "document"
	TypeVideo    DeclaredType = "video"
	TypeUnknown  DeclaredType = "unknown"
)

// Item is one unit of input content. Exactly one of Data or URL is set
// depending on Kind. Items are consumed once by the extraction stage and
// discarded after context assembly.
type Item struct {
	Kind         Kind
	DisplayName  string
	DeclaredType DeclaredType
	Data         []byte // KindUploadedFile
	URL          string // KindRemoteFileRef / KindVideoRef
	MimeType     string
}

// Upload is an inline uploaded file as it arrives from a multipart request.
type Upload struct {
	Data         []byte
	OriginalName string
	MimeType     string
}

// ExtractionResult is the outcome of processing one Item. Err set means the
// item failed; the batch always carries exactly one result per input item.
type ExtractionResult struct {
	SourceName string
	Text       string
	Err        error
}

func (r ExtractionResult) OK() bool {
	return r.Err == nil
}

// Context is the single concatenated text blob assembled from all ingested
// inputs, in input order. Owned by the request that built it.
type Context struct {
	Text    string
	Results []ExtractionResult
}

// DeclaredTypeFor maps a MIME type (with file extension fallback) onto an
// extraction strategy.
func DeclaredTypeFor(mimeType, name string) DeclaredType {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "audio/"):
		return TypeAudio
	case mt == "application/pdf":
		return TypePDF
	case strings.HasPrefix(mt, "text/"):
		return TypeDocument
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3", ".wav", ".m4a", ".ogg", ".flac":
		return TypeAudio
	case ".pdf":
		return TypePDF
	case ".txt", ".md", ".markdown", ".doc", ".docx":
		return TypeDocument
	}

	if strings.HasPrefix(mt, "application/") {
		return TypeDocument
	}
	return TypeUnknown
}

// ParseDeclaredType normalizes an explicit request field into a known
// declared type, defaulting to unknown.
func ParseDeclaredType(s string) DeclaredType {
	switch DeclaredType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeAudio:
		return TypeAudio
	case TypePDF:
		return TypePDF
	case TypeDocument:
		return TypeDocument
	case TypeVideo:
		return TypeVideo
	default:
		return TypeUnknown
	}
}
