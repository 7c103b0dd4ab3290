package models

import (
	"time"

	"github.com/google/uuid"
)

// AIIntegration stores a user's credentials for a third-party AI
// provider. The API key is encrypted before it reaches this struct
// and is only decrypted at call time; one row per user+provider.
type AIIntegration struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_provider" json:"user_id"`
	Provider        string    `gorm:"size:100;not null;uniqueIndex:idx_user_provider" json:"provider"`
	EncryptedAPIKey string    `gorm:"type:text;not null" json:"-"`
	Model           string    `gorm:"size:100" json:"model"`
	BaseURL         string    `gorm:"size:500" json:"base_url"`
	Name            string    `gorm:"size:255" json:"name"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
