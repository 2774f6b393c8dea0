package dto

import "time"

// StaffLoginRequest is the staff login payload.
type StaffLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CustomerTokenResponse carries a freshly issued customer token.
type CustomerTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStatusResponse describes the caller's staff session.
type SessionStatusResponse struct {
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SettingRequest is the settings update payload.
type SettingRequest struct {
	Value string `json:"value"`
}
