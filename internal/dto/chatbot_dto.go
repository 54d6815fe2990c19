package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SendChatRequest struct {
	SessionId     uuid.UUID `json:"session_id" validate:"required"`
	Query         string    `json:"query" validate:"required"`
	InfluencerUID string    `json:"influencer_uid,omitempty"`
}

type SendChatResponse struct {
	SessionId  uuid.UUID `json:"session_id"`
	Response   string    `json:"response"`
	Language   string    `json:"language"`
	Intent     string    `json:"intent"`
	Contextual bool      `json:"contextual"`
}

type GetChatHistoryResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}
