package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influencer-chatbot-be/pkg/chat/intent"
	"influencer-chatbot-be/pkg/conversation"
	"influencer-chatbot-be/pkg/lang"
	"influencer-chatbot-be/pkg/llm"
)

type fakeProvider struct {
	response string
	err      error
	prompt   string
	calls    int
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, provider llm.LLMProvider) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, 5*time.Second, provider, false, discardLogger())
	return client, server
}

func TestDispatchStructuredData(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"natural_language_query": "Quels sont mes 5 meilleurs produits ?",
			"result":                 "| produit | ventes |",
			"explanation":            "Top 5 par ventes.",
		})
	}, &fakeProvider{})

	result := client.Dispatch(context.Background(), DispatchRequest{
		Query:         "Quels sont mes 5 meilleurs produits ?",
		OriginalQuery: "Quels sont mes 5 meilleurs produits ?",
		Intent:        intent.StructuredData,
		Language:      lang.French,
		InfluencerUID: "uid-1",
	})

	assert.Equal(t, "/api/query", gotPath)
	assert.Equal(t, "uid-1", gotBody["influencer_uid"])
	assert.NotContains(t, gotBody, "conversation_context")

	require.True(t, result.Success)
	require.NotNil(t, result.Data)
	assert.Nil(t, result.Document)
	assert.Equal(t, "| produit | ventes |", result.Data.Result)
	assert.Equal(t, "Top 5 par ventes.", result.Data.Explanation)
}

func TestDispatchDocumentQA(t *testing.T) {
	var gotPath string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{
			"query":      "What is your privacy policy on data retention?",
			"answer":     "Data is kept for 12 months.",
			"references": []string{"privacy-policy.pdf, p. 3"},
		})
	}, &fakeProvider{})

	result := client.Dispatch(context.Background(), DispatchRequest{
		Query:    "What is your privacy policy on data retention?",
		Intent:   intent.DocumentQA,
		Language: lang.English,
	})

	assert.Equal(t, "/api/analyze", gotPath)
	require.True(t, result.Success)
	require.NotNil(t, result.Document)
	assert.Nil(t, result.Data)
	assert.Equal(t, "Data is kept for 12 months.", result.Document.Answer)
	assert.Equal(t, []string{"privacy-policy.pdf, p. 3"}, result.Document.References)
}

func TestDispatchAttachesConversationContext(t *testing.T) {
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{"result": "15000"})
	}, &fakeProvider{})

	history := []conversation.Turn{
		{Role: conversation.RoleUser, Content: "What is John's engagement rate?", Language: lang.English, Timestamp: time.Now()},
		{Role: conversation.RoleAssistant, Content: "4.2%", Language: lang.English, Timestamp: time.Now()},
	}

	result := client.Dispatch(context.Background(), DispatchRequest{
		Query:         "What is John's Instagram follower count?",
		OriginalQuery: "What about his follower count?",
		Intent:        intent.StructuredData,
		Language:      lang.English,
		Contextual:    true,
		History:       history,
	})
	require.True(t, result.Success)

	cc, ok := gotBody["conversation_context"].(map[string]interface{})
	require.True(t, ok, "conversation_context missing from payload")
	assert.Equal(t, true, cc["has_context"])
	assert.Equal(t, "What about his follower count?", cc["original_query"])
	assert.Equal(t, "What is John's Instagram follower count?", cc["reformulated_query"])
	assert.Contains(t, cc["history"], "Human: What is John's engagement rate?")
	assert.Contains(t, cc["history"], "Assistant: 4.2%")
}

func TestDispatchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 50*time.Millisecond, &fakeProvider{}, false, discardLogger())
	result := client.Dispatch(context.Background(), DispatchRequest{
		Query:  "slow question",
		Intent: intent.StructuredData,
	})

	assert.False(t, result.Success)
	assert.Equal(t, ErrorKindTimeout, result.ErrKind)
	assert.Equal(t, "timeout", result.Err)
}

func TestDispatchHTTPErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, &fakeProvider{})

	result := client.Dispatch(context.Background(), DispatchRequest{Query: "q", Intent: intent.StructuredData})

	assert.False(t, result.Success)
	assert.Equal(t, ErrorKindHTTPStatus, result.ErrKind)
	assert.Contains(t, result.Err, "500")
}

func TestDispatchUndecodableBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}, &fakeProvider{})

	result := client.Dispatch(context.Background(), DispatchRequest{Query: "q", Intent: intent.StructuredData})

	assert.False(t, result.Success)
	assert.Equal(t, ErrorKindDecode, result.ErrKind)
}

func TestDispatchEmptyResultIsStillDataSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"natural_language_query": "Which products sold in Antarctica?",
			"result":                 "",
			"explanation":            "No rows matched the filter.",
		})
	}, &fakeProvider{})

	result := client.Dispatch(context.Background(), DispatchRequest{Query: "q", Intent: intent.StructuredData})

	require.True(t, result.Success, "a present result field is a success even when empty")
	require.NotNil(t, result.Data)
	assert.Equal(t, "", result.Data.Result)
	assert.Equal(t, "No rows matched the filter.", result.Data.Explanation)
}

func TestDispatchEmptyAnswerIsStillDocumentSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"query":  "q",
			"answer": "",
		})
	}, &fakeProvider{})

	result := client.Dispatch(context.Background(), DispatchRequest{Query: "q", Intent: intent.DocumentQA})

	require.True(t, result.Success)
	require.NotNil(t, result.Document)
	assert.Equal(t, "", result.Document.Answer)
}

func TestDispatchExplicitSuccessFalse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"result":  "partial",
			"message": "query engine overloaded",
		})
	}, &fakeProvider{})

	result := client.Dispatch(context.Background(), DispatchRequest{Query: "q", Intent: intent.StructuredData})

	assert.False(t, result.Success)
	assert.Equal(t, ErrorKindBackend, result.ErrKind)
	assert.Contains(t, result.Err, "query engine overloaded")
}

func TestDispatchInBandBackendError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"error": "no tables found"})
	}, &fakeProvider{})

	result := client.Dispatch(context.Background(), DispatchRequest{Query: "q", Intent: intent.StructuredData})

	assert.False(t, result.Success)
	assert.Equal(t, ErrorKindBackend, result.ErrKind)
	assert.Contains(t, result.Err, "no tables found")
}

func TestDispatchTransportFailure(t *testing.T) {
	// Point at a closed server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, 2*time.Second, &fakeProvider{}, false, discardLogger())
	result := client.Dispatch(context.Background(), DispatchRequest{Query: "q", Intent: intent.StructuredData})

	assert.False(t, result.Success)
	assert.Equal(t, ErrorKindTransport, result.ErrKind)
}

func TestDispatchOpenWeb(t *testing.T) {
	provider := &fakeProvider{response: "Argentina won the 2022 World Cup."}
	client := NewClient("http://unused.invalid", time.Second, provider, false, discardLogger())

	result := client.Dispatch(context.Background(), DispatchRequest{
		Query:    "Who won the 2022 World Cup?",
		Intent:   intent.OpenWeb,
		Language: lang.English,
	})

	require.True(t, result.Success)
	require.NotNil(t, result.Data)
	assert.Equal(t, "Argentina won the 2022 World Cup.", result.Data.Result)
	assert.Contains(t, provider.prompt, "Who won the 2022 World Cup?")
}

func TestDispatchOpenWebGenerationFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model unavailable")}
	client := NewClient("http://unused.invalid", time.Second, provider, false, discardLogger())

	result := client.Dispatch(context.Background(), DispatchRequest{
		Query:  "Who won the 2022 World Cup?",
		Intent: intent.OpenWeb,
	})

	assert.False(t, result.Success)
	assert.Equal(t, ErrorKindGeneration, result.ErrKind)
}

func TestDispatchOpenWebHistoryGatedByConfig(t *testing.T) {
	history := []conversation.Turn{
		{Role: conversation.RoleUser, Content: "Tell me about the World Cup.", Language: lang.English, Timestamp: time.Now()},
		{Role: conversation.RoleAssistant, Content: "Which edition?", Language: lang.English, Timestamp: time.Now()},
	}
	req := DispatchRequest{
		Query:      "Who won the 2022 one?",
		Intent:     intent.OpenWeb,
		Language:   lang.English,
		Contextual: true,
		History:    history,
	}

	off := &fakeProvider{response: "Argentina."}
	NewClient("http://unused.invalid", time.Second, off, false, discardLogger()).Dispatch(context.Background(), req)
	assert.NotContains(t, off.prompt, "Tell me about the World Cup.")

	on := &fakeProvider{response: "Argentina."}
	NewClient("http://unused.invalid", time.Second, on, true, discardLogger()).Dispatch(context.Background(), req)
	assert.Contains(t, on.prompt, "Tell me about the World Cup.")
}
