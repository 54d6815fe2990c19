package factory

import (
	"fmt"

	"influencer-chatbot-be/internal/constant"
	"influencer-chatbot-be/pkg/llm"
	"influencer-chatbot-be/pkg/llm/gemini"
	"influencer-chatbot-be/pkg/llm/huggingface"
	"influencer-chatbot-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, ollamaBaseURL, geminiAPIKey, huggingFaceAPIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(geminiAPIKey, modelName), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = constant.OllamaDefaultBaseURL
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(huggingFaceAPIKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
