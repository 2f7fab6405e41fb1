package models

import "time"

// AcquireSource records how an asset entered the user's inventory.
type AcquireSource string

const (
	AcquireSourcePurchase AcquireSource = "purchase"
	AcquireSourceReward   AcquireSource = "reward"
	AcquireSourceGrant    AcquireSource = "grant"
)

// OwnedAsset is one (user, asset) ownership record. Created exactly once per
// successful purchase or grant; re-granting an owned asset is a no-op.
type OwnedAsset struct {
	ID             string        `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string        `gorm:"uniqueIndex:idx_owned_user_asset;not null" json:"external_user_id"`
	AssetID        string        `gorm:"uniqueIndex:idx_owned_user_asset;type:uuid;not null" json:"asset_id"`
	Source         AcquireSource `gorm:"type:varchar(16);not null;default:'grant'" json:"source"`
	AcquiredAt     time.Time     `gorm:"autoCreateTime" json:"acquired_at"`
}
