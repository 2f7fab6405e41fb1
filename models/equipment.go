package models

import "time"

// EquippedAsset maps one of a user's equip slots to the asset currently worn
// in it. At most one row per (user, slot); rows must reference owned assets.
type EquippedAsset struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string    `gorm:"uniqueIndex:idx_equipped_user_slot;not null" json:"external_user_id"`
	SlotType       SlotType  `gorm:"uniqueIndex:idx_equipped_user_slot;type:varchar(32);not null" json:"slot_type"`
	AssetID        string    `gorm:"type:uuid;not null" json:"asset_id"`
	EquippedAt     time.Time `gorm:"autoUpdateTime" json:"equipped_at"`
}
