package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"influencer-chatbot-be/internal/constant"
	"influencer-chatbot-be/pkg/faq"
	"influencer-chatbot-be/pkg/llm"
)

// Intent is the routing label deciding which backend answers a query. The
// values are the wire labels the classifier model is asked to emit.
type Intent string

const (
	// StructuredData routes to the structured-data backend (/api/query).
	StructuredData Intent = "text2sql"
	// DocumentQA routes to the document backend (/api/analyze).
	DocumentQA Intent = "analyze"
	// OpenWeb answers through open-domain generation, no backend call.
	OpenWeb Intent = "web"
)

// Classifier assigns one of the three intents to a standalone query. It
// always operates on the possibly-reformulated form, never the raw
// contextual query.
type Classifier struct {
	llmProvider llm.LLMProvider
	faqSet      *faq.Set
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, faqSet *faq.Set, logger *log.Logger) *Classifier {
	if faqSet == nil {
		faqSet = faq.Empty()
	}
	return &Classifier{
		llmProvider: llmProvider,
		faqSet:      faqSet,
		logger:      logger,
	}
}

// Classify labels the query. Classifier errors and out-of-vocabulary labels
// resolve to StructuredData, the most capable backend.
func (c *Classifier) Classify(ctx context.Context, query string) Intent {
	prompt := c.buildPrompt(query)

	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("[WARN] Intent classification failed, defaulting to text2sql: %v", err)
		return StructuredData
	}

	label := normalizeLabel(response)
	switch Intent(label) {
	case StructuredData, DocumentQA, OpenWeb:
		c.logger.Printf("[INTENT] %q -> %s", query, label)
		return Intent(label)
	default:
		c.logger.Printf("[WARN] Out-of-vocabulary intent label %q, defaulting to text2sql", label)
		return StructuredData
	}
}

func (c *Classifier) buildPrompt(query string) string {
	questions := c.faqSet.Questions()
	faqList := "(no FAQ entries configured)"
	if len(questions) > 0 {
		var b strings.Builder
		for _, q := range questions {
			b.WriteString("- ")
			b.WriteString(q)
			b.WriteString("\n")
		}
		faqList = strings.TrimRight(b.String(), "\n")
	}

	return fmt.Sprintf(constant.ClassifierPromptTemplate, query, query, faqList)
}

// normalizeLabel strips whitespace, markdown fences and backticks the model
// tends to wrap short answers in.
func normalizeLabel(response string) string {
	label := strings.TrimSpace(response)
	label = strings.TrimPrefix(label, "```")
	label = strings.TrimSuffix(label, "```")
	label = strings.Trim(label, "`")
	label = strings.ToLower(strings.TrimSpace(label))
	return label
}
