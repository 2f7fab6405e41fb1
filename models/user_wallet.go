package models

import (
	"time"

	"gorm.io/gorm"
)

// UserWallet is the per-user economy row (denormalized for performance).
// Coins, XP and level live here; identity lives in the profile service.
type UserWallet struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service

	// Spendable balance. Never negative.
	Coins   int64 `json:"coins" gorm:"not null;default:0"`
	TotalXP int64 `json:"total_xp" gorm:"default:0"`
	Level   int   `json:"level" gorm:"default:1"`

	// Activity counters (drive achievement thresholds)
	TotalPurchases int64 `json:"total_purchases" gorm:"default:0"`
	TotalClaims    int64 `json:"total_claims" gorm:"default:0"`

	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
