package dtos

import "time"

type APIResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	ResponseTime string            `json:"response_time"`
	Data         any               `json:"data,omitempty"`
	Total        *int64            `json:"total,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
}

type LoginUser struct {
	UID string `json:"uid"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	TokenType   string    `json:"tokenType"`
	User        LoginUser `json:"user"`
	Username    string    `json:"username"`
}

type SignUpResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	IsActive     bool      `json:"is_active"`
	OTPExpiresAt time.Time `json:"otp_expired_date"`
}

type LiveStats struct {
	LiveID        string `json:"live_id" db:"live_id"`
	IsLive        bool   `json:"is_live" db:"is_live"`
	TotalViewers  int64  `json:"total_viewers" db:"total_viewers"`
	ActiveViewers int64  `json:"active_viewers" db:"active_viewers"`
}
