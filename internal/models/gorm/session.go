package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a sign-in bound to an issued access token.
type Session struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"column:token;type:text;not null" json:"-"`
	IPAddress *string   `gorm:"column:ip_address" json:"ip_address"`
	Device    *string   `gorm:"column:device" json:"device"`
	Platform  *string   `gorm:"column:platform" json:"platform"`
	Latitude  *string   `gorm:"column:latitude" json:"latitude"`
	Longitude *string   `gorm:"column:longitude" json:"longitude"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (Session) TableName() string {
	return "session"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
