package services

import (
	"testing"

	"wellness-game-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquip(t *testing.T) {
	db := openTestDB(t)
	svc := NewEquipmentService(db)
	ownership := NewOwnershipService(db)

	top := seedAsset(t, db, "hoodie", models.SlotTop, 50, models.AssetStatusPublished)
	shoes := seedAsset(t, db, "sneakers", models.SlotShoes, 40, models.AssetStatusPublished)
	costume := seedAsset(t, db, "dino-suit", models.SlotCostume, 200, models.AssetStatusPublished)

	require.NoError(t, ownership.Grant("user-1", top.ID, models.AcquireSourcePurchase))
	require.NoError(t, ownership.Grant("user-1", shoes.ID, models.AcquireSourcePurchase))
	require.NoError(t, ownership.Grant("user-1", costume.ID, models.AcquireSourceReward))

	t.Run("equip owned asset", func(t *testing.T) {
		equipped, err := svc.Equip("user-1", models.SlotTop, top.ID)
		require.NoError(t, err)
		require.Contains(t, equipped, models.SlotTop)
		assert.Equal(t, top.ID, equipped[models.SlotTop].AssetID)
		assert.Equal(t, top.ModelURL, equipped[models.SlotTop].ModelURL)
	})

	t.Run("unowned asset rejected", func(t *testing.T) {
		_, err := svc.Equip("user-2", models.SlotTop, top.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("wrong slot rejected", func(t *testing.T) {
		_, err := svc.Equip("user-1", models.SlotHead, top.ID)
		assert.ErrorIs(t, err, ErrSlotMismatch)
	})

	t.Run("costume clears every other slot", func(t *testing.T) {
		_, err := svc.Equip("user-1", models.SlotShoes, shoes.ID)
		require.NoError(t, err)

		equipped, err := svc.Equip("user-1", models.SlotCostume, costume.ID)
		require.NoError(t, err)
		assert.Len(t, equipped, 1)
		assert.Equal(t, costume.ID, equipped[models.SlotCostume].AssetID)
	})

	t.Run("equipping an item keeps the costume on", func(t *testing.T) {
		equipped, err := svc.Equip("user-1", models.SlotTop, top.ID)
		require.NoError(t, err)
		assert.Len(t, equipped, 2)
		assert.Equal(t, costume.ID, equipped[models.SlotCostume].AssetID)
		assert.Equal(t, top.ID, equipped[models.SlotTop].AssetID)
	})

	t.Run("re-equip replaces the slot", func(t *testing.T) {
		vest := seedAsset(t, db, "vest", models.SlotTop, 60, models.AssetStatusPublished)
		require.NoError(t, ownership.Grant("user-1", vest.ID, models.AcquireSourcePurchase))

		equipped, err := svc.Equip("user-1", models.SlotTop, vest.ID)
		require.NoError(t, err)
		assert.Equal(t, vest.ID, equipped[models.SlotTop].AssetID)
		assert.Len(t, equipped, 2)
	})
}

func TestUnequip(t *testing.T) {
	db := openTestDB(t)
	svc := NewEquipmentService(db)
	ownership := NewOwnershipService(db)

	hair := seedAsset(t, db, "ponytail", models.SlotHair, 25, models.AssetStatusPublished)
	require.NoError(t, ownership.Grant("user-1", hair.ID, models.AcquireSourcePurchase))

	_, err := svc.Equip("user-1", models.SlotHair, hair.ID)
	require.NoError(t, err)

	equipped, err := svc.Unequip("user-1", models.SlotHair)
	require.NoError(t, err)
	assert.NotContains(t, equipped, models.SlotHair)

	// Clearing an already-empty slot is fine
	equipped, err = svc.Unequip("user-1", models.SlotHair)
	require.NoError(t, err)
	assert.Empty(t, equipped)
}

func TestEquipmentMapEmpty(t *testing.T) {
	db := openTestDB(t)
	svc := NewEquipmentService(db)

	equipped, err := svc.EquipmentMap("fresh-user")
	require.NoError(t, err)
	assert.Empty(t, equipped)
}
