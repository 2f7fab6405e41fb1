package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPurchasableSlot(t *testing.T) {
	for _, slot := range PurchasableSlotTypes {
		assert.True(t, IsPurchasableSlot(slot), "slot %s should be sellable", slot)
	}
	for _, slot := range []SlotType{SlotBody, SlotHeadMesh, SlotEyes, SlotNose} {
		assert.False(t, IsPurchasableSlot(slot), "base layer %s must not be sellable", slot)
	}
}

func TestAssetPurchasable(t *testing.T) {
	asset := Asset{SlotType: SlotTop, Status: AssetStatusPublished}
	assert.True(t, asset.Purchasable())

	asset.Status = AssetStatusDraft
	assert.False(t, asset.Purchasable())

	asset.Status = AssetStatusArchived
	assert.False(t, asset.Purchasable())

	asset = Asset{SlotType: SlotBody, Status: AssetStatusPublished}
	assert.False(t, asset.Purchasable())
}
