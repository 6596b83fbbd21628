package entities

import (
	"time"
)

// Cookie is a durable client-side cookie record. The value column holds
// base64-encoded AES-256-GCM ciphertext so credentials are never written
// to disk in the clear.
type Cookie struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	Value     string    `gorm:"type:text" json:"-"`
	Path      string    `gorm:"size:255;default:/" json:"path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Cookie) TableName() string {
	return "cookies"
}

// RememberTokenCookie is the one cookie the session store persists.
const RememberTokenCookie = "remember_token"
