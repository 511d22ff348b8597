package models

import "time"

// StartingTitle is the display title every new profile starts with
const StartingTitle = "Script Kiddie"

// UserProfile represents the signed-in founder. At most one exists per workspace.
type UserProfile struct {
	Username   string `json:"username"`
	IsPro      bool   `json:"isPro"`
	JoinedAt   int64  `json:"joinedAt"` // unix millis
	Reputation int    `json:"reputation"`
	Title      string `json:"title"` // display only, see stats.Rank
}

// NewUserProfile creates a fresh profile with zero reputation
func NewUserProfile(username string, isPro bool, now time.Time) *UserProfile {
	return &UserProfile{
		Username:   username,
		IsPro:      isPro,
		JoinedAt:   now.UnixMilli(),
		Reputation: 0,
		Title:      StartingTitle,
	}
}
