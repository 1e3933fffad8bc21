package models

import "time"

// User is the session record kept for a logged-in demo user.
type User struct {
	SessionID string    `json:"sessionId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest is the body accepted by the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
