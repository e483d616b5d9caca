package models

import (
	"time"

	"gorm.io/gorm"
)

// Username and email uniqueness is enforced in the controller against
// live rows only, so a deleted account's name can be reused.
type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"index"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"index"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}

type UserSession struct {
	gorm.Model
	UserID         uint64    `json:"user_id" gorm:"index"`
	SessionID      string    `json:"session_id" gorm:"index"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	DeviceID       string    `json:"device_id"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type LoginLog struct {
	ID            uint       `gorm:"primaryKey"`
	UserID        *uint64    `json:"user_id" gorm:"index"`
	SessionID     string     `json:"session_id" gorm:"index"`
	Username      string     `json:"username"`
	LoginAt       *time.Time `json:"login_at"`
	LogoutAt      *time.Time `json:"logout_at"`
	IPAddress     string     `json:"ip_address"`
	UserAgent     string     `json:"user_agent"`
	Browser       string     `json:"browser"`
	OS            string     `json:"os"`
	DeviceType    string     `json:"device_type"`
	LoginStatus   string     `json:"login_status"`
	FailureReason *string    `json:"failure_reason"`
	CreatedAt     time.Time
}
