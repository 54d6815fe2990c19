package bootstrap

import (
	"context"
	"log"

	"influencer-chatbot-be/internal/config"
	"influencer-chatbot-be/internal/controller"
	"influencer-chatbot-be/internal/pkg/logger"
	"influencer-chatbot-be/internal/service"
	"influencer-chatbot-be/pkg/conversation"
	"influencer-chatbot-be/pkg/faq"
	"influencer-chatbot-be/pkg/llm/factory"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("BOOTSTRAP", "LLM provider initialized", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 3. Conversation Store: Redis when configured, in-process otherwise
	var store conversation.Store
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as a direct address", map[string]interface{}{
				"error": err.Error(),
			})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis, falling back to in-memory store", map[string]interface{}{
				"error": err.Error(),
			})
			store = conversation.NewMemoryStore()
		} else {
			store = conversation.NewRedisStore(rdb)
			sysLogger.Info("BOOTSTRAP", "Using Redis conversation store", nil)
		}
	} else {
		store = conversation.NewMemoryStore()
		sysLogger.Info("BOOTSTRAP", "Using in-memory conversation store", nil)
	}

	// 4. FAQ reference set (classifier input, read-only)
	faqSet, err := faq.LoadCSV(cfg.Chat.FAQFilePath)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to load FAQ file, classifier runs without FAQ matching", map[string]interface{}{
			"path":  cfg.Chat.FAQFilePath,
			"error": err.Error(),
		})
		faqSet = faq.Empty()
	} else {
		sysLogger.Info("BOOTSTRAP", "Loaded FAQ entries", map[string]interface{}{
			"count": faqSet.Len(),
		})
	}

	// 5. Services
	chatbotService := service.NewChatbotService(
		llmProvider,
		store,
		faqSet,
		cfg.Backend.BaseURL,
		cfg.Backend.Timeout,
		cfg.Backend.ContextForWeb,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		ChatbotController: controller.NewChatbotController(chatbotService),
		Logger:            sysLogger,
	}
}
