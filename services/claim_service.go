package services

import (
	"log"
	"time"

	"wellness-game-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClaimCooldown is the interval that must elapse between successive claims.
const ClaimCooldown = 24 * time.Hour

type ClaimService struct {
	DB *gorm.DB

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewClaimService(db *gorm.DB) *ClaimService {
	return &ClaimService{DB: db, Now: time.Now}
}

// Ladder returns the full reward ladder ordered by day.
func (s *ClaimService) Ladder() ([]models.DailyReward, error) {
	var ladder []models.DailyReward
	err := s.DB.Order("day ASC").Find(&ladder).Error
	return ladder, err
}

// ClaimStatus is the user-facing view of the ladder and the user's position.
type ClaimStatus struct {
	Ladder           []models.DailyReward `json:"ladder"`
	LastClaimedDay   int                  `json:"last_claimed_day"`
	ClaimableDay     int                  `json:"claimable_day"`
	NextEligibleTime *time.Time           `json:"next_eligible_time,omitempty"`
	EligibleNow      bool                 `json:"eligible_now"`
}

// Status reports where the user sits on the ladder.
func (s *ClaimService) Status(externalUserID string) (*ClaimStatus, error) {
	ladder, err := s.Ladder()
	if err != nil {
		return nil, err
	}
	if len(ladder) == 0 {
		return nil, ErrRewardNotFound
	}

	state, err := s.claimState(externalUserID)
	if err != nil {
		return nil, err
	}

	status := &ClaimStatus{
		Ladder:           ladder,
		LastClaimedDay:   state.LastClaimedDay,
		ClaimableDay:     claimableDay(state.LastClaimedDay, len(ladder)),
		NextEligibleTime: state.NextEligibleTime,
		EligibleNow:      state.NextEligibleTime == nil || !s.Now().Before(*state.NextEligibleTime),
	}
	return status, nil
}

func (s *ClaimService) claimState(externalUserID string) (*models.UserClaimState, error) {
	var state models.UserClaimState
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&state).Error
	if err == gorm.ErrRecordNotFound {
		return &models.UserClaimState{ExternalUserID: externalUserID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// claimableDay is the successor of the last claimed day; the ladder wraps
// back to day 1 after day N.
func claimableDay(lastClaimedDay, ladderLen int) int {
	return lastClaimedDay%ladderLen + 1
}

// claimedInCycle reports whether the day is already claimed in the current
// cycle. A completed ladder (last == N) starts a fresh cycle with nothing
// claimed.
func claimedInCycle(lastClaimedDay, day, ladderLen int) bool {
	return lastClaimedDay >= 1 && lastClaimedDay < ladderLen && day <= lastClaimedDay
}

// ClaimReceipt reports what a successful claim granted.
type ClaimReceipt struct {
	Day              int       `json:"day"`
	CoinsGranted     int64     `json:"coins_granted"`
	AvatarGranted    *string   `json:"avatar_granted,omitempty"`
	Balance          int64     `json:"balance"`
	NextEligibleTime time.Time `json:"next_eligible_time"`
}

// Claim redeems the given ladder day for the user. The coin credit, the
// optional avatar grant and the claim-state advance are applied as one unit;
// a failure of any sub-step rolls back the whole claim.
func (s *ClaimService) Claim(externalUserID string, day int) (*ClaimReceipt, error) {
	unlock := lockUser(externalUserID)
	defer unlock()

	now := s.Now()

	var receipt *ClaimReceipt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var ladder []models.DailyReward
		if err := tx.Order("day ASC").Find(&ladder).Error; err != nil {
			return err
		}
		if len(ladder) == 0 {
			return ErrRewardNotFound
		}

		var state models.UserClaimState
		err := tx.Where("external_user_id = ?", externalUserID).First(&state).Error
		if err == gorm.ErrRecordNotFound {
			state = models.UserClaimState{
				ID:             uuid.NewString(),
				ExternalUserID: externalUserID,
			}
			if err := tx.Create(&state).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		// Check order matters: a re-claim of a consumed day is always
		// AlreadyClaimed, even while the cooldown is still running.
		if claimedInCycle(state.LastClaimedDay, day, len(ladder)) {
			return ErrAlreadyClaimed
		}
		if state.NextEligibleTime != nil && now.Before(*state.NextEligibleTime) {
			return ErrClaimTooEarly
		}
		if day < 1 || day > len(ladder) || day != claimableDay(state.LastClaimedDay, len(ladder)) {
			return ErrInvalidDay
		}

		reward := ladder[day-1]

		wallet, err := creditWalletTx(tx, externalUserID, reward.Coins)
		if err != nil {
			return err
		}
		wallet.TotalClaims++
		if err := tx.Save(wallet).Error; err != nil {
			return err
		}

		if reward.AvatarAssetID != nil {
			if err := grantTx(tx, externalUserID, *reward.AvatarAssetID, models.AcquireSourceReward); err != nil {
				return err
			}
		}

		state.LastClaimedDay = day
		if day == len(ladder) {
			state.TotalCycles++
		}
		next := now.Add(ClaimCooldown)
		state.NextEligibleTime = &next
		if err := tx.Save(&state).Error; err != nil {
			return err
		}

		achSvc := NewAchievementService(s.DB)
		if err := achSvc.autoAwardClaimTx(tx, wallet, &state); err != nil {
			log.Printf("⚠️ achievement check failed for %s: %v", externalUserID, err)
		}

		receipt = &ClaimReceipt{
			Day:              day,
			CoinsGranted:     reward.Coins,
			AvatarGranted:    reward.AvatarAssetID,
			Balance:          wallet.Coins,
			NextEligibleTime: next,
		}
		log.Printf("🎁 Daily reward claimed: %s day %d → +%d coins", externalUserID, day, reward.Coins)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// --- Admin ladder management ---

// CreateDailyReward appends or defines a ladder rung.
func (s *ClaimService) CreateDailyReward(day int, coins int64, avatarAssetID *string) (*models.DailyReward, error) {
	if day < 1 || coins < 0 {
		return nil, ErrInvalidAmount
	}
	reward := models.DailyReward{
		ID:            uuid.NewString(),
		Day:           day,
		Coins:         coins,
		AvatarAssetID: avatarAssetID,
	}
	if err := s.DB.Create(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

// UpdateDailyReward changes a rung's coin amount or avatar grant.
func (s *ClaimService) UpdateDailyReward(id string, coins *int64, avatarAssetID *string) (*models.DailyReward, error) {
	var reward models.DailyReward
	if err := s.DB.Where("id = ?", id).First(&reward).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	if coins != nil {
		if *coins < 0 {
			return nil, ErrInvalidAmount
		}
		reward.Coins = *coins
	}
	if avatarAssetID != nil {
		reward.AvatarAssetID = avatarAssetID
	}
	if err := s.DB.Save(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

// DeleteDailyReward removes a rung. The delete is hard: a soft-deleted row
// would keep holding the unique day index and block re-creating that day.
func (s *ClaimService) DeleteDailyReward(id string) error {
	res := s.DB.Unscoped().Where("id = ?", id).Delete(&models.DailyReward{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRewardNotFound
	}
	return nil
}
