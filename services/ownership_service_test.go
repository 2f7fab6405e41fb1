package services

import (
	"testing"

	"wellness-game-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewOwnershipService(db)

	asset := seedAsset(t, db, "scarf", models.SlotTop, 15, models.AssetStatusPublished)

	require.NoError(t, svc.Grant("user-1", asset.ID, models.AcquireSourcePurchase))
	require.NoError(t, svc.Grant("user-1", asset.ID, models.AcquireSourceReward))

	var count int64
	require.NoError(t, db.Model(&models.OwnedAsset{}).
		Where("external_user_id = ? AND asset_id = ?", "user-1", asset.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The second grant must not rewrite the original source
	var record models.OwnedAsset
	require.NoError(t, db.Where("external_user_id = ?", "user-1").First(&record).Error)
	assert.Equal(t, models.AcquireSourcePurchase, record.Source)
}

func TestOwns(t *testing.T) {
	db := openTestDB(t)
	svc := NewOwnershipService(db)

	asset := seedAsset(t, db, "beanie", models.SlotHead, 15, models.AssetStatusPublished)

	owned, err := svc.Owns("user-1", asset.ID)
	require.NoError(t, err)
	assert.False(t, owned)

	require.NoError(t, svc.Grant("user-1", asset.ID, models.AcquireSourceGrant))

	owned, err = svc.Owns("user-1", asset.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	// Ownership is per-user
	owned, err = svc.Owns("user-2", asset.ID)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestListOwned(t *testing.T) {
	db := openTestDB(t)
	svc := NewOwnershipService(db)

	a := seedAsset(t, db, "cap", models.SlotHead, 10, models.AssetStatusPublished)
	b := seedAsset(t, db, "boots", models.SlotShoes, 20, models.AssetStatusPublished)

	require.NoError(t, svc.Grant("user-1", a.ID, models.AcquireSourcePurchase))
	require.NoError(t, svc.Grant("user-1", b.ID, models.AcquireSourceReward))

	owned, err := svc.ListOwned("user-1")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	owned, err = svc.ListOwned("user-2")
	require.NoError(t, err)
	assert.Empty(t, owned)
}
