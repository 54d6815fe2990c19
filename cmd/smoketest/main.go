// Command smoketest drives the canonical bilingual scenarios against a
// running instance: a French data query, an English follow-up pair, a
// document question and a greeting.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"influencer-chatbot-be/internal/dto"
	"influencer-chatbot-be/internal/pkg/serverutils"
)

var queries = []string{
	"Quels sont mes 5 meilleurs produits ?",
	"What is John's Instagram engagement rate?",
	"What about his follower count?",
	"What is your privacy policy on data retention?",
	"Bonjour",
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "server base URL")
	flag.Parse()

	client := &http.Client{Timeout: 120 * time.Second}
	token := os.Getenv("SMOKETEST_TOKEN")

	sessionId := createSession(client, *baseURL, token)
	log.Printf("session: %s", sessionId)

	for _, q := range queries {
		reqBody, _ := json.Marshal(map[string]string{
			"session_id": sessionId,
			"query":      q,
		})
		req, err := http.NewRequest("POST", *baseURL+"/api/chatbot/v1/chat", bytes.NewBuffer(reqBody))
		if err != nil {
			log.Fatalf("create request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("chat request failed: %v", err)
		}

		var envelope struct {
			Success bool                 `json:"success"`
			Data    dto.SendChatResponse `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			log.Fatalf("decode response: %v", err)
		}
		resp.Body.Close()

		fmt.Printf("Q: %s\n  language=%s intent=%s contextual=%v\n  A: %s\n\n",
			q, envelope.Data.Language, envelope.Data.Intent, envelope.Data.Contextual, envelope.Data.Response)
	}
}

func createSession(client *http.Client, baseURL, token string) string {
	req, err := http.NewRequest("POST", baseURL+"/api/chatbot/v1/session", nil)
	if err != nil {
		log.Fatalf("create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("create session failed: %v", err)
	}
	defer resp.Body.Close()

	var envelope serverutils.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		log.Fatalf("decode session response: %v", err)
	}
	data, _ := envelope.Data.(map[string]interface{})
	id, _ := data["id"].(string)
	if id == "" {
		log.Fatalf("no session id in response")
	}
	return id
}
