package dto

import (
	"time"
)

// IssueTokenResponse contains the issued token. It is returned once.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
