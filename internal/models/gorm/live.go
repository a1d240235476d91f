package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Live is a streaming room owned by a host.
type Live struct {
	ID        string         `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
	IsPrivate bool           `gorm:"column:is_private;not null" json:"is_private"`
	Price     int            `gorm:"column:price;not null" json:"price"`
	IsLive    bool           `gorm:"column:is_live;not null" json:"is_live"`
	HostID    string         `gorm:"column:host_id;type:uuid;not null;index" json:"host_id"`

	// Relationships
	Host    *User         `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Viewers []LiveSession `gorm:"foreignKey:LiveID" json:"viewers,omitempty"`
}

// TableName specifies the table name for GORM
func (Live) TableName() string {
	return "live"
}

func (l *Live) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
