package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             string         `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
	Username       string         `gorm:"column:username;not null" json:"username"`
	Email          string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Password       string         `gorm:"column:password;not null" json:"-"`
	Phone          string         `gorm:"column:phone;size:20;uniqueIndex" json:"phone"`
	Photo          *string        `gorm:"column:photo" json:"photo"`
	IsActive       bool           `gorm:"column:is_active;not null;default:false" json:"is_active"`
	IsBlocked      bool           `gorm:"column:is_blocked;not null;default:false" json:"is_blocked"`
	RoleID         string         `gorm:"column:role_id;type:uuid;not null" json:"role_id"`
	OTP            *string        `gorm:"column:otp" json:"-"`
	OTPExpiredDate *time.Time     `gorm:"column:otp_expired_date" json:"-"`

	// Relationships
	Role  *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Lives []Live `gorm:"foreignKey:HostID" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "user"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
