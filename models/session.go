package models

import "time"

// Session is the locally persisted client identity: the anonymously issued
// record id plus the bearer token proving ownership of it. Restoring the
// session on startup is what makes the anonymous identity stable across
// runs.
type Session struct {
	UserID   string    `json:"user_id"`
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// AuthResponse is the body of a successful anonymous identity issuance.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}
