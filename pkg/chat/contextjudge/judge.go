package contextjudge

import (
	"context"
	"fmt"
	"log"
	"strings"

	"influencer-chatbot-be/internal/constant"
	"influencer-chatbot-be/pkg/conversation"
	"influencer-chatbot-be/pkg/llm"
)

// Judge decides whether a query depends on prior turns. It is the gate in
// front of the reformulator: a false verdict means the query flows through
// the pipeline untouched.
type Judge struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewJudge(llmProvider llm.LLMProvider, logger *log.Logger) *Judge {
	return &Judge{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// IsContextual returns true only when the model affirms that the query
// references, elides or continues a prior topic. With fewer than 2 turns
// there is no prior exchange to depend on, so the answer is false without a
// model call. Any provider error or non-affirmative answer is false: the
// safer default, avoiding unwanted context injection.
func (j *Judge) IsContextual(ctx context.Context, query string, chatLog *conversation.Log) bool {
	if chatLog == nil || chatLog.Len() < 2 {
		return false
	}

	transcript := conversation.Transcript(chatLog.RecentWindow(conversation.RecentWindowSize))
	prompt := fmt.Sprintf(constant.ContextJudgePromptTemplate, transcript, query)

	response, err := j.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		j.logger.Printf("[WARN] Context judgment failed, treating query as independent: %v", err)
		return false
	}

	verdict := strings.ToLower(strings.TrimSpace(response))
	verdict = strings.Trim(verdict, `"'.`)

	contextual := verdict == "yes" || strings.HasPrefix(verdict, "yes")
	j.logger.Printf("[CONTEXT] Verdict for %q: %v (raw: %q)", query, contextual, response)

	return contextual
}
