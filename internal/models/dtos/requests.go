package dtos

import (
	"encoding/json"
	"errors"
	"strings"
)

type SignUpReq struct {
	Username           string `json:"username" validate:"required,min=3,max=64"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone" validate:"required,min=8,max=20,numeric"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,eqfield=NewPassword"`
}

type SignInReq struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// ClientInfo describes where a sign-in came from. Filled from request headers.
type ClientInfo struct {
	IPAddress string
	Device    string
	Platform  string
}

type VerifyOTPReq struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	OTP    string `json:"otp" validate:"required,len=6,numeric"`
}

type ResendOTPReq struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// LiveReq is the create/update body of a live room. Pointers distinguish
// "absent" from zero values so updates can merge onto the stored row.
type LiveReq struct {
	Price     *int  `json:"price" validate:"required,min=0"`
	IsPrivate *bool `json:"is_private" validate:"required"`
}

type CreateUserReq struct {
	Username string  `json:"username" validate:"required,min=3,max=64"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"required,min=8,max=20,numeric"`
	Password string  `json:"password" validate:"required,min=8"`
	RoleID   string  `json:"role_id" validate:"required,uuid"`
	Photo    *string `json:"photo" validate:"omitempty,url"`
}

type UpdateUserReq struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=64"`
	Phone     *string `json:"phone" validate:"omitempty,min=8,max=20,numeric"`
	Photo     *string `json:"photo" validate:"omitempty,url"`
	RoleID    *string `json:"role_id" validate:"omitempty,uuid"`
	IsActive  *bool   `json:"is_active"`
	IsBlocked *bool   `json:"is_blocked"`
}

type MultipleIDsReq struct {
	IDs IDList `json:"ids"`
}

// IDList accepts either a JSON array of ids or a string holding one,
// e.g. `["a","b"]` or `"[\"a\",\"b\"]"`.
type IDList []string

func (l *IDList) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err == nil {
		*l = ids
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.New("ids must be an array of strings")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*l = nil
		return nil
	}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return errors.New("ids must be an array of strings")
	}
	*l = ids
	return nil
}
