package factory

import (
	"fmt"

	"turbolearn-ai-be/pkg/llm"
	"turbolearn-ai-be/pkg/llm/groq"
	"turbolearn-ai-be/pkg/llm/huggingface"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "groq":
		return groq.NewGroqProvider(apiKey, baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
