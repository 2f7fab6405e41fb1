package services

import (
	"testing"
	"time"

	"wellness-game-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newClaimHarness wires a claim service to a controllable clock.
func newClaimHarness(db *gorm.DB) (*ClaimService, *time.Time) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewClaimService(db)
	svc.Now = func() time.Time { return now }
	return svc, &now
}

func TestClaimLadderProgression(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedAchievementTypes(db))
	seedLadder(t, db, 10, 20, 30)
	svc, clock := newClaimHarness(db)

	t.Run("first claim is day 1", func(t *testing.T) {
		receipt, err := svc.Claim("user-1", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, receipt.Day)
		assert.Equal(t, int64(10), receipt.CoinsGranted)
		assert.Equal(t, int64(10), receipt.Balance)
		assert.Equal(t, clock.Add(ClaimCooldown), receipt.NextEligibleTime)
	})

	t.Run("re-claim of a consumed day reports AlreadyClaimed even during the cooldown", func(t *testing.T) {
		_, err := svc.Claim("user-1", 1)
		assert.ErrorIs(t, err, ErrAlreadyClaimed)
	})

	t.Run("next day during the cooldown is too early", func(t *testing.T) {
		*clock = clock.Add(23 * time.Hour)
		_, err := svc.Claim("user-1", 2)
		assert.ErrorIs(t, err, ErrClaimTooEarly)
	})

	t.Run("after the cooldown only the successor day is claimable", func(t *testing.T) {
		*clock = clock.Add(2 * time.Hour)

		_, err := svc.Claim("user-1", 3)
		assert.ErrorIs(t, err, ErrInvalidDay)

		receipt, err := svc.Claim("user-1", 2)
		require.NoError(t, err)
		assert.Equal(t, int64(30), receipt.Balance)
	})

	t.Run("completing the ladder counts a cycle", func(t *testing.T) {
		*clock = clock.Add(25 * time.Hour)
		receipt, err := svc.Claim("user-1", 3)
		require.NoError(t, err)
		assert.Equal(t, int64(60), receipt.Balance)

		var state models.UserClaimState
		require.NoError(t, db.Where("external_user_id = ?", "user-1").First(&state).Error)
		assert.Equal(t, int64(1), state.TotalCycles)
	})

	t.Run("ladder wraps back to day 1", func(t *testing.T) {
		*clock = clock.Add(25 * time.Hour)
		receipt, err := svc.Claim("user-1", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, receipt.Day)
		assert.Equal(t, int64(70), receipt.Balance)
	})
}

func TestClaimValidation(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedAchievementTypes(db))
	svc, _ := newClaimHarness(db)

	t.Run("empty ladder", func(t *testing.T) {
		_, err := svc.Claim("user-1", 1)
		assert.ErrorIs(t, err, ErrRewardNotFound)
	})

	seedLadder(t, db, 10, 20)

	t.Run("day out of range", func(t *testing.T) {
		_, err := svc.Claim("user-1", 0)
		assert.ErrorIs(t, err, ErrInvalidDay)

		_, err = svc.Claim("user-1", 5)
		assert.ErrorIs(t, err, ErrInvalidDay)
	})

	t.Run("skipping ahead is rejected", func(t *testing.T) {
		_, err := svc.Claim("user-1", 2)
		assert.ErrorIs(t, err, ErrInvalidDay)
	})
}

func TestClaimGrantsLadderAvatar(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedAchievementTypes(db))
	svc, _ := newClaimHarness(db)

	avatar := seedAsset(t, db, "golden-wings", models.SlotTop, 0, models.AssetStatusPublished)
	reward := models.DailyReward{
		ID:            uuid.NewString(),
		Day:           1,
		Coins:         100,
		AvatarAssetID: &avatar.ID,
	}
	require.NoError(t, db.Create(&reward).Error)

	receipt, err := svc.Claim("user-1", 1)
	require.NoError(t, err)
	require.NotNil(t, receipt.AvatarGranted)
	assert.Equal(t, avatar.ID, *receipt.AvatarGranted)

	owned, err := NewOwnershipService(db).Owns("user-1", avatar.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	var record models.OwnedAsset
	require.NoError(t, db.Where("external_user_id = ? AND asset_id = ?", "user-1", avatar.ID).First(&record).Error)
	assert.Equal(t, models.AcquireSourceReward, record.Source)
}

func TestClaimStatus(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedAchievementTypes(db))
	seedLadder(t, db, 10, 20, 30)
	svc, clock := newClaimHarness(db)

	t.Run("fresh user", func(t *testing.T) {
		status, err := svc.Status("user-1")
		require.NoError(t, err)
		assert.Equal(t, 0, status.LastClaimedDay)
		assert.Equal(t, 1, status.ClaimableDay)
		assert.True(t, status.EligibleNow)
		assert.Len(t, status.Ladder, 3)
	})

	t.Run("after a claim the cooldown gates eligibility", func(t *testing.T) {
		_, err := svc.Claim("user-1", 1)
		require.NoError(t, err)

		status, err := svc.Status("user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, status.LastClaimedDay)
		assert.Equal(t, 2, status.ClaimableDay)
		assert.False(t, status.EligibleNow)
		require.NotNil(t, status.NextEligibleTime)

		*clock = clock.Add(ClaimCooldown)
		status, err = svc.Status("user-1")
		require.NoError(t, err)
		assert.True(t, status.EligibleNow)
	})
}

func TestClaimableDayWrap(t *testing.T) {
	assert.Equal(t, 1, claimableDay(0, 7))
	assert.Equal(t, 4, claimableDay(3, 7))
	assert.Equal(t, 1, claimableDay(7, 7))

	assert.False(t, claimedInCycle(0, 1, 7))
	assert.True(t, claimedInCycle(3, 2, 7))
	assert.False(t, claimedInCycle(3, 4, 7))
	// Day 7 just finished the cycle; nothing is claimed in the new one
	assert.False(t, claimedInCycle(7, 1, 7))
}

func TestClaimAchievements(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedAchievementTypes(db))
	seedLadder(t, db, 5)
	svc, _ := newClaimHarness(db)

	_, err := svc.Claim("user-1", 1)
	require.NoError(t, err)

	// A one-day ladder completes a cycle on the first claim
	achievements, err := NewAchievementService(db).ListForUser("user-1")
	require.NoError(t, err)

	codes := make([]string, 0, len(achievements))
	for _, a := range achievements {
		codes = append(codes, a["code"].(string))
	}
	assert.Contains(t, codes, "FULL_CYCLE")
}

func TestDailyRewardAdmin(t *testing.T) {
	db := openTestDB(t)
	svc := NewClaimService(db)

	t.Run("create", func(t *testing.T) {
		reward, err := svc.CreateDailyReward(1, 50, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, reward.Day)
		assert.Equal(t, int64(50), reward.Coins)
	})

	t.Run("create rejects bad values", func(t *testing.T) {
		_, err := svc.CreateDailyReward(0, 50, nil)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.CreateDailyReward(2, -5, nil)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("update", func(t *testing.T) {
		reward, err := svc.CreateDailyReward(2, 10, nil)
		require.NoError(t, err)

		coins := int64(75)
		updated, err := svc.UpdateDailyReward(reward.ID, &coins, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(75), updated.Coins)
	})

	t.Run("update unknown rung", func(t *testing.T) {
		coins := int64(5)
		_, err := svc.UpdateDailyReward("missing", &coins, nil)
		assert.ErrorIs(t, err, ErrRewardNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		reward, err := svc.CreateDailyReward(3, 10, nil)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteDailyReward(reward.ID))
		assert.ErrorIs(t, svc.DeleteDailyReward(reward.ID), ErrRewardNotFound)
	})

	t.Run("deleted day can be recreated", func(t *testing.T) {
		reward, err := svc.CreateDailyReward(4, 10, nil)
		require.NoError(t, err)
		require.NoError(t, svc.DeleteDailyReward(reward.ID))

		recreated, err := svc.CreateDailyReward(4, 75, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, recreated.Day)
		assert.Equal(t, int64(75), recreated.Coins)
	})
}
