package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"influencer-chatbot-be/internal/constant"
	"influencer-chatbot-be/internal/dto"
	"influencer-chatbot-be/internal/pkg/logger"
	"influencer-chatbot-be/pkg/backend"
	"influencer-chatbot-be/pkg/chat/contextjudge"
	"influencer-chatbot-be/pkg/chat/intent"
	"influencer-chatbot-be/pkg/chat/reformulate"
	"influencer-chatbot-be/pkg/chat/synthesis"
	"influencer-chatbot-be/pkg/conversation"
	"influencer-chatbot-be/pkg/faq"
	"influencer-chatbot-be/pkg/lang"
	"influencer-chatbot-be/pkg/llm"

	"github.com/google/uuid"
)

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ClearSession(ctx context.Context, sessionId uuid.UUID) error
}

// chatbotService runs the routing pipeline: language detection, context
// judgment, reformulation, intent classification, dispatch, synthesis. The
// conversation log is the only state; every stage is a function of its
// inputs plus the log.
type chatbotService struct {
	store     conversation.Store
	logger    logger.ILogger
	llmLogger *log.Logger

	// Pipeline components
	detector      *lang.Detector
	judge         *contextjudge.Judge
	reformulator  *reformulate.Reformulator
	classifier    *intent.Classifier
	backendClient *backend.Client
	synthesizer   *synthesis.Synthesizer
}

// NewChatbotService creates a chatbot service with all pipeline components
func NewChatbotService(
	llmProvider llm.LLMProvider,
	store conversation.Store,
	faqSet *faq.Set,
	backendBaseURL string,
	backendTimeout time.Duration,
	contextForWeb bool,
	sysLogger logger.ILogger,
) IChatbotService {

	llmLogger := initLLMLogger()

	return &chatbotService{
		store:     store,
		logger:    sysLogger,
		llmLogger: llmLogger,

		detector:      lang.NewDetector(),
		judge:         contextjudge.NewJudge(llmProvider, llmLogger),
		reformulator:  reformulate.NewReformulator(llmProvider, llmLogger),
		classifier:    intent.NewClassifier(llmProvider, faqSet, llmLogger),
		backendClient: backend.NewClient(backendBaseURL, backendTimeout, llmProvider, contextForWeb, llmLogger),
		synthesizer:   synthesis.NewSynthesizer(llmProvider, llmLogger),
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-PIPELINE] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// CreateSession creates a new chat session with an empty conversation log
func (cs *chatbotService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sessionId := uuid.New()
	if err := cs.store.Save(ctx, sessionId.String(), conversation.NewLog()); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &dto.CreateSessionResponse{Id: sessionId}, nil
}

// GetChatHistory returns the session's turns in chronological order
func (cs *chatbotService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	chatLog, err := cs.store.Load(ctx, sessionId.String())
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, chatLog.Len())
	for _, t := range chatLog.Turns {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Role:      t.Role,
			Content:   t.Content,
			Language:  string(t.Language),
			CreatedAt: t.Timestamp,
		})
	}
	return resp, nil
}

// SendChat processes one user query through the full pipeline and returns
// the assistant reply. Stages run strictly sequentially; each failure mode
// degrades to a safe default instead of aborting the request.
func (cs *chatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionIdStr := request.SessionId.String()

	chatLog, err := cs.store.Load(ctx, sessionIdStr)
	if err != nil {
		cs.logger.Warn("CHATBOT", "Failed to load conversation log, starting empty", map[string]interface{}{
			"session_id": sessionIdStr,
			"error":      err.Error(),
		})
		chatLog = conversation.NewLog()
	}

	influencerUID := request.InfluencerUID
	if influencerUID == "" {
		influencerUID = constant.DefaultInfluencerUID
	}

	// 1. Language detection (local, never fails)
	language := cs.detector.Detect(request.Query)

	// 2. Context judgment over the recent window
	contextual := cs.judge.IsContextual(ctx, request.Query, chatLog)

	// 3. Reformulation, only for contextual queries
	standalone := request.Query
	if contextual {
		standalone = cs.reformulator.Reformulate(ctx, request.Query, chatLog, language)
	}

	// 4. Intent classification on the standalone form
	queryIntent := cs.classifier.Classify(ctx, standalone)

	// 5. Backend dispatch
	result := cs.backendClient.Dispatch(ctx, backend.DispatchRequest{
		Query:         standalone,
		OriginalQuery: request.Query,
		Intent:        queryIntent,
		Language:      language,
		InfluencerUID: influencerUID,
		Contextual:    contextual,
		History:       chatLog.RecentWindow(conversation.RecentWindowSize),
	})

	// 6. Synthesis, or the apology template on backend failure
	var reply string
	if result.Success {
		reformulated := ""
		if contextual && standalone != request.Query {
			reformulated = standalone
		}
		reply = cs.synthesizer.Synthesize(ctx, result, request.Query, language, influencerUID, reformulated)
	} else {
		reply = apologyFor(result, language)
		cs.logger.Error("CHATBOT", "Backend dispatch failed", map[string]interface{}{
			"session_id": sessionIdStr,
			"intent":     string(queryIntent),
			"kind":       string(result.ErrKind),
			"error":      result.Err,
		})
		cs.llmLogger.Printf("[DISPATCH] Failure (%s): %s", result.ErrKind, result.Err)
	}

	// Record the exchange. The log is the only mutation of this request.
	now := time.Now()
	chatLog.Append(conversation.Turn{
		Role:      conversation.RoleUser,
		Content:   request.Query,
		Language:  language,
		Timestamp: now,
	})
	chatLog.Append(conversation.Turn{
		Role:      conversation.RoleAssistant,
		Content:   reply,
		Language:  language,
		Timestamp: now,
	})
	if err := cs.store.Save(ctx, sessionIdStr, chatLog); err != nil {
		cs.logger.Warn("CHATBOT", "Failed to save conversation log", map[string]interface{}{
			"session_id": sessionIdStr,
			"error":      err.Error(),
		})
	}

	return &dto.SendChatResponse{
		SessionId:  request.SessionId,
		Response:   reply,
		Language:   string(language),
		Intent:     string(queryIntent),
		Contextual: contextual,
	}, nil
}

// ClearSession empties the conversation log (explicit "new topic" action)
func (cs *chatbotService) ClearSession(ctx context.Context, sessionId uuid.UUID) error {
	return cs.store.Delete(ctx, sessionId.String())
}

// apologyFor builds the language-matched user-visible error message. Only
// backend failures surface to the user; timeouts get a dedicated wording.
func apologyFor(result backend.Result, language lang.Language) string {
	msg := result.Err
	if result.ErrKind == backend.ErrorKindTimeout {
		if language == lang.French {
			msg = constant.TimeoutMessageFrench
		} else {
			msg = constant.TimeoutMessageEnglish
		}
	}

	if language == lang.French {
		return fmt.Sprintf(constant.BackendErrorReplyFrench, msg)
	}
	return fmt.Sprintf(constant.BackendErrorReplyEnglish, msg)
}
