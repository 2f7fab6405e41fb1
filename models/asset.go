package models

import "time"

// SlotType is the avatar position an asset occupies when equipped.
type SlotType string

const (
	SlotCostume SlotType = "costume"
	SlotTop     SlotType = "top"
	SlotBottom  SlotType = "bottom"
	SlotHead    SlotType = "head"
	SlotHair    SlotType = "hair"
	SlotShoes   SlotType = "shoes"

	// Reserved base layers — part of the avatar mesh itself,
	// never listed in the shop and never purchasable.
	SlotBody     SlotType = "body"
	SlotHeadMesh SlotType = "head_mesh"
	SlotEyes     SlotType = "eyes"
	SlotNose     SlotType = "nose"
)

// PurchasableSlotTypes are the slots the shop catalog may sell into.
var PurchasableSlotTypes = []SlotType{
	SlotCostume, SlotTop, SlotBottom, SlotHead, SlotHair, SlotShoes,
}

// IsPurchasableSlot reports whether the slot is sellable (not a base layer).
func IsPurchasableSlot(slot SlotType) bool {
	for _, s := range PurchasableSlotTypes {
		if s == slot {
			return true
		}
	}
	return false
}

// AssetStatus indicates the publishing status of a catalog asset
type AssetStatus string

const (
	AssetStatusDraft     AssetStatus = "draft"
	AssetStatusScheduled AssetStatus = "scheduled"
	AssetStatusPublished AssetStatus = "published"
	AssetStatusArchived  AssetStatus = "archived"
)

// Asset is a cosmetic catalog entry. Immutable once published; created and
// retired through the admin CRUD, never by the purchase/claim paths.
type Asset struct {
	ID          string      `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Slug        string      `gorm:"index" json:"slug"`
	Description string      `gorm:"type:text" json:"description"`
	SlotType    SlotType    `gorm:"type:varchar(32);not null;index" json:"slot_type"`
	Price       int64       `gorm:"not null;default:0" json:"price"`
	ModelURL    string      `gorm:"type:text" json:"model_url"` // GLB model on the CDN
	ImageURL    string      `gorm:"type:text" json:"image_url"` // preview image on the CDN
	Status      AssetStatus `gorm:"not null;default:'draft';index" json:"status"`
	PublishAt   *time.Time  `json:"publish_at,omitempty"`

	Timestamps
}

// Purchasable reports whether the asset may be sold right now.
func (a *Asset) Purchasable() bool {
	return a.Status == AssetStatusPublished && IsPurchasableSlot(a.SlotType)
}
