package synthesis

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"influencer-chatbot-be/internal/constant"
	"influencer-chatbot-be/pkg/backend"
	"influencer-chatbot-be/pkg/lang"
	"influencer-chatbot-be/pkg/llm"
)

// Synthesizer turns a successful backend result into a natural-language,
// language-matched reply. Failure results never reach it; the service layer
// substitutes the apology template instead.
type Synthesizer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewSynthesizer(llmProvider llm.LLMProvider, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Synthesize renders the reply. Greetings short-circuit to a fixed template
// regardless of what the backend produced. reformulatedQuery is the
// standalone form when the query was contextual, empty otherwise. On
// generation failure a fixed language-matched error string is returned; the
// underlying error never propagates to the caller.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	result backend.Result,
	originalQuery string,
	language lang.Language,
	influencerUID string,
	reformulatedQuery string,
) string {
	if IsGreeting(originalQuery) {
		if language == lang.French {
			return constant.GreetingReplyFrench
		}
		return constant.GreetingReplyEnglish
	}

	prompt := s.buildPrompt(result, originalQuery, language, reformulatedQuery)

	response, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Printf("[ERROR] Synthesis failed: %v", err)
		if language == lang.French {
			return constant.SynthesisErrorReplyFrench
		}
		return constant.SynthesisErrorReplyEnglish
	}

	return scrubUID(strings.TrimSpace(response), influencerUID)
}

func (s *Synthesizer) buildPrompt(result backend.Result, originalQuery string, language lang.Language, reformulatedQuery string) string {
	summary := summarize(result)

	template := constant.SynthesisPromptEnglish
	disclosure := constant.ContextDisclosureEnglish
	if language == lang.French {
		template = constant.SynthesisPromptFrench
		disclosure = constant.ContextDisclosureFrench
	}

	prompt := fmt.Sprintf(template, originalQuery, summary)
	if reformulatedQuery != "" && reformulatedQuery != originalQuery {
		prompt += fmt.Sprintf(disclosure, reformulatedQuery)
	}
	return prompt
}

// summarize flattens either success variant into the field layout the
// synthesis prompts reference.
func summarize(result backend.Result) string {
	if result.Document != nil {
		return fmt.Sprintf(
			"Query: %s\n\nAnswer:\n%s\n\nReferences:\n%s",
			result.Document.Query,
			result.Document.Answer,
			strings.Join(result.Document.References, "\n"),
		)
	}
	if result.Data != nil {
		return fmt.Sprintf(
			"Query: %s\n\nResult:\n%s\n\nExplanation:\n%s",
			result.Data.NaturalLanguageQuery,
			strings.TrimSpace(result.Data.Result),
			result.Data.Explanation,
		)
	}
	return ""
}

var (
	doubledSpace  = regexp.MustCompile(`[ \t]{2,}`)
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
)

// scrubUID removes any leaked influencer identifier. The prompt already
// forbids echoing it; this guarantees the contract even when the model
// ignores the instruction. Horizontal whitespace around the removal is
// collapsed so the sentence reads naturally; newlines are left alone.
func scrubUID(reply, uid string) string {
	if uid == "" || !strings.Contains(reply, uid) {
		return reply
	}
	scrubbed := strings.ReplaceAll(reply, uid, "")
	scrubbed = doubledSpace.ReplaceAllString(scrubbed, " ")
	scrubbed = trailingSpace.ReplaceAllString(scrubbed, "\n")
	return strings.TrimSpace(scrubbed)
}

// IsGreeting reports whether the query is a pure greeting in either
// supported language.
func IsGreeting(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.Trim(q, "!?.,; ")
	for _, w := range constant.GreetingWords {
		if q == w {
			return true
		}
	}
	return false
}
