package models

import "time"

// TokenRequest carries the operator passphrase.
type TokenRequest struct {
	Passphrase string `json:"passphrase" validate:"required,max=1024"`
}

// TokenResponse is returned when the passphrase is accepted.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// EnrichRequest carries ad-hoc text to enrich.
type EnrichRequest struct {
	Text string `json:"text" validate:"enrichtext"`
}
