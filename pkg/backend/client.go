package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"influencer-chatbot-be/internal/constant"
	"influencer-chatbot-be/pkg/chat/intent"
	"influencer-chatbot-be/pkg/conversation"
	"influencer-chatbot-be/pkg/lang"
	"influencer-chatbot-be/pkg/llm"
)

const (
	// DefaultTimeout bounds each backend call. On expiry the dispatcher
	// returns a timeout failure; no retry is attempted at this layer.
	DefaultTimeout = 30 * time.Second

	queryPath   = "/api/query"
	analyzePath = "/api/analyze"
)

// DispatchRequest carries everything a single dispatch needs. Query is the
// standalone form; OriginalQuery is what the user actually typed.
type DispatchRequest struct {
	Query         string
	OriginalQuery string
	Intent        intent.Intent
	Language      lang.Language
	InfluencerUID string
	Contextual    bool
	History       []conversation.Turn
}

// Client maps an intent to a backend call. OpenWeb queries go to the
// generative service; the other two intents go to fixed HTTP endpoints.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	llmProvider   llm.LLMProvider
	contextForWeb bool
	logger        *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, llmProvider llm.LLMProvider, contextForWeb bool, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: timeout},
		llmProvider:   llmProvider,
		contextForWeb: contextForWeb,
		logger:        logger,
	}
}

// --- Wire payloads ---

type conversationContext struct {
	HasContext        bool   `json:"has_context"`
	OriginalQuery     string `json:"original_query"`
	ReformulatedQuery string `json:"reformulated_query"`
	History           string `json:"history"`
}

type backendRequest struct {
	Query               string               `json:"query"`
	InfluencerUID       string               `json:"influencer_uid"`
	ConversationContext *conversationContext `json:"conversation_context,omitempty"`
}

// Answer and Result are pointers: the success variants are discriminated by
// field presence, not by non-empty content, so an empty string answer is
// still an answer.
type backendResponse struct {
	Success              *bool    `json:"success,omitempty"`
	Query                string   `json:"query,omitempty"`
	Answer               *string  `json:"answer,omitempty"`
	References           []string `json:"references,omitempty"`
	NaturalLanguageQuery string   `json:"natural_language_query,omitempty"`
	Result               *string  `json:"result,omitempty"`
	Explanation          string   `json:"explanation,omitempty"`
	Error                string   `json:"error,omitempty"`
	Message              string   `json:"message,omitempty"`
}

// Dispatch routes the request per its intent. All failure modes come back
// as a Result; Dispatch never returns an error.
func (c *Client) Dispatch(ctx context.Context, req DispatchRequest) Result {
	if req.Intent == intent.OpenWeb {
		return c.dispatchWeb(ctx, req)
	}

	path := queryPath
	if req.Intent == intent.DocumentQA {
		path = analyzePath
	}
	return c.post(ctx, path, req)
}

// dispatchWeb answers through the generative service directly; this is a
// terminal synthesis step bypassing the structured backends.
func (c *Client) dispatchWeb(ctx context.Context, req DispatchRequest) Result {
	template := constant.OpenWebPromptEnglish
	if req.Language == lang.French {
		template = constant.OpenWebPromptFrench
	}
	prompt := fmt.Sprintf(template, req.Query)

	if c.contextForWeb && req.Contextual && len(req.History) > 0 {
		prompt = conversation.Transcript(req.History) + "\n\n" + prompt
	}

	response, err := c.llmProvider.Generate(ctx, prompt)
	if err != nil {
		c.logger.Printf("[ERROR] Open-web generation failed: %v", err)
		return failure(ErrorKindGeneration, "generation error: %v", err)
	}

	return successData(&DataAnswer{Result: response})
}

func (c *Client) post(ctx context.Context, path string, req DispatchRequest) Result {
	payload := backendRequest{
		Query:         req.Query,
		InfluencerUID: req.InfluencerUID,
	}
	if req.Contextual {
		payload.ConversationContext = &conversationContext{
			HasContext:        true,
			OriginalQuery:     req.OriginalQuery,
			ReformulatedQuery: req.Query,
			History:           conversation.Transcript(req.History),
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failure(ErrorKindTransport, "marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return failure(ErrorKindTransport, "create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			c.logger.Printf("[ERROR] Backend call to %s timed out", path)
			return failure(ErrorKindTimeout, "timeout")
		}
		c.logger.Printf("[ERROR] Backend call to %s failed: %v", path, err)
		return failure(ErrorKindTransport, "request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(ErrorKindTransport, "read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return failure(ErrorKindHTTPStatus, "backend returned status %d", resp.StatusCode)
	}

	var parsed backendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return failure(ErrorKindDecode, "invalid JSON returned from backend")
	}

	return discriminate(&parsed)
}

// discriminate maps the loosely-typed backend body onto the tagged union.
// The two backends use different field names for the same semantic content;
// a present answer/references marks the document shape, a present result
// marks the data shape. Presence decides, not content: an empty result with
// an explanation is still a data success.
func discriminate(parsed *backendResponse) Result {
	if parsed.Success != nil && !*parsed.Success {
		return failure(ErrorKindBackend, "%s", inBandMessage(parsed))
	}
	if parsed.Answer != nil || len(parsed.References) > 0 {
		answer := ""
		if parsed.Answer != nil {
			answer = *parsed.Answer
		}
		return successDocument(&DocumentAnswer{
			Query:      parsed.Query,
			Answer:     answer,
			References: parsed.References,
		})
	}
	if parsed.Result != nil {
		return successData(&DataAnswer{
			NaturalLanguageQuery: parsed.NaturalLanguageQuery,
			Result:               *parsed.Result,
			Explanation:          parsed.Explanation,
		})
	}
	return failure(ErrorKindBackend, "%s", inBandMessage(parsed))
}

func inBandMessage(parsed *backendResponse) string {
	if parsed.Error != "" {
		return parsed.Error
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	return "unknown error"
}

func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
