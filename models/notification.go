package models

// Sender identifies who produced a notification
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAI        Sender = "ai"
	SenderSystem    Sender = "system"
	SenderCommunity Sender = "community"
)

// Notification is one entry of the ephemeral event feed
type Notification struct {
	ID        string `json:"id"`
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix millis
	IsHype    bool   `json:"isHype,omitempty"`
}
