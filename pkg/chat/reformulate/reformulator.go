package reformulate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"influencer-chatbot-be/internal/constant"
	"influencer-chatbot-be/pkg/conversation"
	"influencer-chatbot-be/pkg/lang"
	"influencer-chatbot-be/pkg/llm"
)

// Reformulator rewrites a context-dependent query into a standalone
// equivalent that embeds the necessary referents from recent turns.
type Reformulator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewReformulator(llmProvider llm.LLMProvider, logger *log.Logger) *Reformulator {
	return &Reformulator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Reformulate produces a self-contained version of query in the given
// language. On any failure, including an empty model answer, the original
// query is returned unchanged so the pipeline never blocks here.
func (r *Reformulator) Reformulate(ctx context.Context, query string, chatLog *conversation.Log, language lang.Language) string {
	if chatLog == nil || chatLog.Len() == 0 {
		return query
	}

	transcript := conversation.Transcript(chatLog.RecentWindow(conversation.RecentWindowSize))

	template := constant.ReformulatorPromptEnglish
	if language == lang.French {
		template = constant.ReformulatorPromptFrench
	}
	prompt := fmt.Sprintf(template, transcript, query)

	response, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		r.logger.Printf("[WARN] Reformulation failed, keeping original query: %v", err)
		return query
	}

	standalone := strings.TrimSpace(response)
	standalone = strings.Trim(standalone, `"`)
	if standalone == "" {
		r.logger.Printf("[WARN] Reformulation returned empty output, keeping original query")
		return query
	}

	r.logger.Printf("[REFORMULATE] %q -> %q", query, standalone)
	return standalone
}
