package models

import "time"

// Source records where a generated piece of content came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

type Suggestion struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	IsApplied bool      `json:"isApplied"`
	CreatedAt time.Time `json:"createdAt"`
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Partner connection states.
const (
	PartnerStatusNone      = "none"
	PartnerStatusPending   = "pending"
	PartnerStatusConnected = "connected"
)

type PartnerConnection struct {
	UserID      string    `json:"userId"`
	Status      string    `json:"status"`
	InviteCode  string    `json:"inviteCode,omitempty"`
	PartnerID   string    `json:"partnerId,omitempty"`
	PartnerName string    `json:"partnerName,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
