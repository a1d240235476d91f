package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LiveSession records a viewer's presence in a live room. One row per
// (user, live); rejoining refreshes the row instead of adding another.
type LiveSession struct {
	ID        string     `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	UserID    string     `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_live_session_user_live" json:"user_id"`
	LiveID    string     `gorm:"column:live_id;type:uuid;not null;uniqueIndex:uq_live_session_user_live;index" json:"live_id"`
	LeftAt    *time.Time `gorm:"column:left_at" json:"left_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Live *Live `gorm:"foreignKey:LiveID" json:"-"`
}

// TableName specifies the table name for GORM
func (LiveSession) TableName() string {
	return "live_session"
}

func (s *LiveSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
