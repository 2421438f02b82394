package bootstrap

import (
	"log"

	"turbolearn-ai-be/internal/config"
	"turbolearn-ai-be/internal/controller"
	"turbolearn-ai-be/internal/pkg/logger"
	"turbolearn-ai-be/internal/service"
	"turbolearn-ai-be/pkg/extract"
	"turbolearn-ai-be/pkg/ingest"
	llmfactory "turbolearn-ai-be/pkg/llm/factory"
	"turbolearn-ai-be/pkg/topic"
	"turbolearn-ai-be/pkg/transcribe"
	"turbolearn-ai-be/pkg/transcribe/gladia"
	"turbolearn-ai-be/pkg/transcribe/whisper"
)

// Container holds every wired dependency of the application.
type Container struct {
	Log logger.ILogger

	Catalog topic.Catalog

	GenerateService service.IGenerateService

	SystemController   controller.ISystemController
	GenerateController controller.IGenerateController
}

func NewContainer(cfg *config.Config) *Container {
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	provider, err := llmfactory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		llmAPIKey(cfg),
	)
	if err != nil {
		log.Fatalf("Failed to initialize LLM provider: %v", err)
	}

	transcriber := whisper.NewWhisperProvider(cfg.Keys.OpenAI, "")
	videoTranscriber := transcribe.NewCachedVideoTranscriber(
		gladia.NewGladiaProvider(cfg.Keys.Gladia, ""),
		cfg.Ingest.TranscriptCacheTTL,
	)
	extractor := extract.NewDocumentExtractor()

	normalizer := ingest.NewNormalizer(
		transcriber,
		videoTranscriber,
		extractor,
		appLogger,
		cfg.Ingest.DownloadTimeout,
		cfg.Ingest.MaxConcurrency,
	)

	catalog := topic.NewMemoryCatalog(cfg.Ingest.TranscriptCacheTTL)

	generateService := service.NewGenerateService(normalizer, provider, catalog, appLogger, cfg.Ai.MaxTokens, cfg.Ai.RetryBackoff)

	return &Container{
		Log:                appLogger,
		Catalog:            catalog,
		GenerateService:    generateService,
		SystemController:   controller.NewSystemController(),
		GenerateController: controller.NewGenerateController(generateService),
	}
}

func llmAPIKey(cfg *config.Config) string {
	switch cfg.Ai.LLMProvider {
	case "huggingface":
		return cfg.Keys.HuggingFace
	default:
		return cfg.Keys.Groq
	}
}
