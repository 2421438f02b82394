package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"turbolearn-ai-be/internal/constant"
	"turbolearn-ai-be/internal/dto"
	"turbolearn-ai-be/internal/pkg/logger"
	"turbolearn-ai-be/internal/pkg/serverutils"
	"turbolearn-ai-be/pkg/ai/coerce"
	"turbolearn-ai-be/pkg/ingest"
	"turbolearn-ai-be/pkg/llm"
	"turbolearn-ai-be/pkg/topic"
)

type IGenerateService interface {
	GenerateNotes(ctx context.Context, req *dto.GenerateNotesRequest, uploads []ingest.Upload) (*dto.GenerateNotesResponse, error)
	GenerateQuiz(ctx context.Context, notes string) (*dto.GenerateQuizResponse, error)
	GenerateFlashcards(ctx context.Context, notes string) (*dto.GenerateFlashcardsResponse, error)
	GenerateSummary(ctx context.Context, notes string) (*dto.GenerateSummaryResponse, error)
	DetectIntent(message string) *dto.DetectIntentResponse
}

type generateService struct {
	normalizer   *ingest.Normalizer
	provider     llm.LLMProvider
	catalog      topic.Catalog
	log          logger.ILogger
	maxTokens    int
	retryBackoff time.Duration
}

func NewGenerateService(
	normalizer *ingest.Normalizer,
	provider llm.LLMProvider,
	catalog topic.Catalog,
	log logger.ILogger,
	maxTokens int,
	retryBackoff time.Duration,
) IGenerateService {
	if retryBackoff <= 0 {
		retryBackoff = 2 * time.Second
	}
	return &generateService{
		normalizer:   normalizer,
		provider:     provider,
		catalog:      catalog,
		log:          log,
		maxTokens:    maxTokens,
		retryBackoff: retryBackoff,
	}
}

func (s *generateService) GenerateNotes(ctx context.Context, req *dto.GenerateNotesRequest, uploads []ingest.Upload) (*dto.GenerateNotesResponse, error) {
	items := make([]ingest.Item, 0, len(req.FileRefs)+1)
	for _, ref := range req.FileRefs {
		name := ref.Name
		if name == "" {
			name = ref.URL
		}
		declared := ingest.ParseDeclaredType(ref.DeclaredType)
		if declared == ingest.TypeUnknown {
			declared = ingest.DeclaredTypeFor("", name)
		}
		items = append(items, ingest.Item{
			Kind:         ingest.KindRemoteFileRef,
			DisplayName:  name,
			DeclaredType: declared,
			URL:          ref.URL,
		})
	}
	if req.VideoURL != "" {
		items = append(items, ingest.Item{
			Kind:         ingest.KindVideoRef,
			DisplayName:  req.VideoURL,
			DeclaredType: ingest.TypeVideo,
			URL:          req.VideoURL,
		})
	}

	contextBlob, err := s.normalizer.BuildContext(ctx, items, uploads)
	if err != nil {
		return nil, err
	}

	contextText := contextBlob.Text
	if known := s.lookupTopic(contextBlob); known != nil {
		contextText = fmt.Sprintf("**Known Topic:** %s\n%s\n\n%s", known.Title, known.Summary, contextText)
	}
	if req.Prompt != "" {
		contextText = fmt.Sprintf("**User Instruction:** %s\n\n%s", req.Prompt, contextText)
	}

	raw, err := s.complete(ctx, fmt.Sprintf(constant.NotesPromptTemplate, contextText))
	if err != nil {
		return nil, serverutils.UpstreamError("Failed to generate notes", err)
	}

	artifact, err := coerce.Coerce(coerce.KindNotes, raw)
	if err != nil {
		return nil, err
	}

	sources := make([]dto.SourceResult, 0, len(contextBlob.Results))
	for _, res := range contextBlob.Results {
		src := dto.SourceResult{Name: res.SourceName, Ok: res.OK()}
		if res.Err != nil {
			src.Error = res.Err.Error()
		}
		sources = append(sources, src)
	}

	return &dto.GenerateNotesResponse{
		Success:     true,
		Content:     artifact.Text,
		Notes:       artifact.Text,
		Type:        "structured_notes",
		Timestamp:   time.Now().UnixMilli(),
		Sources:     sources,
		WasFallback: artifact.WasFallback,
	}, nil
}

func (s *generateService) GenerateQuiz(ctx context.Context, notes string) (*dto.GenerateQuizResponse, error) {
	raw, err := s.complete(ctx, fmt.Sprintf(constant.QuizPromptTemplate, notes))
	if err != nil {
		return nil, serverutils.UpstreamError("Failed to generate quiz", err)
	}

	artifact, err := coerce.Coerce(coerce.KindQuiz, raw)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateQuizResponse{
		Success:     true,
		Quiz:        *artifact.Quiz,
		Type:        "quiz",
		WasFallback: artifact.WasFallback,
	}, nil
}

func (s *generateService) GenerateFlashcards(ctx context.Context, notes string) (*dto.GenerateFlashcardsResponse, error) {
	raw, err := s.complete(ctx, fmt.Sprintf(constant.FlashcardsPromptTemplate, notes))
	if err != nil {
		return nil, serverutils.UpstreamError("Failed to generate flashcards", err)
	}

	artifact, err := coerce.Coerce(coerce.KindFlashcards, raw)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateFlashcardsResponse{
		Success:     true,
		Flashcards:  artifact.Flashcards,
		Type:        "flashcards",
		WasFallback: artifact.WasFallback,
	}, nil
}

func (s *generateService) GenerateSummary(ctx context.Context, notes string) (*dto.GenerateSummaryResponse, error) {
	raw, err := s.complete(ctx, fmt.Sprintf(constant.SummaryPromptTemplate, notes))
	if err != nil {
		return nil, serverutils.UpstreamError("Failed to generate summary", err)
	}

	artifact, err := coerce.Coerce(coerce.KindSummary, raw)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateSummaryResponse{
		Success:     true,
		Content:     artifact.Text,
		Type:        "summary",
		WasFallback: artifact.WasFallback,
	}, nil
}

var noteKeywords = []string{"notes", "note", "summary", "summarize", "take notes", "generate notes"}

func (s *generateService) DetectIntent(message string) *dto.DetectIntentResponse {
	lower := strings.ToLower(message)
	for _, keyword := range noteKeywords {
		if strings.Contains(lower, keyword) {
			return &dto.DetectIntentResponse{
				Intent:     "note_generation",
				Confidence: 0.95,
				Reasoning:  "User message contains note-related keywords",
			}
		}
	}
	return &dto.DetectIntentResponse{
		Intent:     "general_chat",
		Confidence: 0.7,
		Reasoning:  "User message appears to be general conversation",
	}
}

// complete calls the completion provider with a single retry after a short
// backoff. A second failure surfaces as an upstream generation error.
func (s *generateService) complete(ctx context.Context, prompt string) (string, error) {
	var opts []llm.Option
	if s.maxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(s.maxTokens))
	}

	raw, err := s.provider.Generate(ctx, prompt, opts...)
	if err == nil {
		return raw, nil
	}

	s.log.Warn("generate", "Completion failed, retrying once", map[string]interface{}{
		"error": err.Error(),
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(s.retryBackoff):
	}

	return s.provider.Generate(ctx, prompt, opts...)
}

// lookupTopic keys the catalog by the file-id prefix of the first successful
// source (the part before the first dash in its name).
func (s *generateService) lookupTopic(contextBlob *ingest.Context) *topic.Topic {
	if s.catalog == nil {
		return nil
	}
	for _, res := range contextBlob.Results {
		if !res.OK() {
			continue
		}
		key := res.SourceName
		if idx := strings.Index(key, "-"); idx > 0 {
			key = key[:idx]
		}
		if t, found := s.catalog.Lookup(key); found {
			return t
		}
	}
	return nil
}
