package services

import (
	"log"

	"wellness-game-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// SeedAchievementTypes upserts the built-in trigger table (idempotent, run at boot).
func SeedAchievementTypes(db *gorm.DB) error {
	for _, trigger := range models.AchievementTriggers {
		var existing models.AchievementType
		err := db.Where("code = ?", trigger.Code).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			trigger.ID = uuid.NewString()
			if err := db.Create(&trigger).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ListForUser returns the user's awarded achievements with their type data.
func (s *AchievementService) ListForUser(externalUserID string) ([]map[string]interface{}, error) {
	var awards []models.UserAchievement
	if err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("awarded_at DESC").
		Find(&awards).Error; err != nil {
		return nil, err
	}

	var types []models.AchievementType
	if err := s.DB.Find(&types).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.AchievementType, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}

	response := make([]map[string]interface{}, 0, len(awards))
	for _, a := range awards {
		t := byID[a.AchievementTypeID]
		response = append(response, map[string]interface{}{
			"id":          a.ID,
			"code":        t.Code,
			"name":        t.Name,
			"description": t.Description,
			"icon_url":    t.IconURL,
			"rarity":      t.Rarity,
			"awarded_at":  a.AwardedAt,
		})
	}
	return response, nil
}

// autoAwardTx checks all triggers for a user after a wallet update.
func (s *AchievementService) autoAwardTx(tx *gorm.DB, wallet *models.UserWallet) error {
	return s.award(tx, wallet, nil)
}

// autoAwardClaimTx additionally sees claim-cycle counters.
func (s *AchievementService) autoAwardClaimTx(tx *gorm.DB, wallet *models.UserWallet, state *models.UserClaimState) error {
	return s.award(tx, wallet, state)
}

func (s *AchievementService) award(tx *gorm.DB, wallet *models.UserWallet, state *models.UserClaimState) error {
	var types []models.AchievementType
	if err := tx.Find(&types).Error; err != nil {
		return err
	}

	ownedCount, err := ownedCountTx(tx, wallet.ExternalUserID)
	if err != nil {
		return err
	}

	for _, trigger := range types {
		if !meetsThreshold(wallet, state, ownedCount, trigger.Threshold) {
			continue
		}
		var count int64
		if err := tx.Model(&models.UserAchievement{}).
			Where("external_user_id = ? AND achievement_type_id = ?", wallet.ExternalUserID, trigger.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		award := models.UserAchievement{
			ID:                uuid.NewString(),
			ExternalUserID:    wallet.ExternalUserID,
			AchievementTypeID: trigger.ID,
		}
		if err := tx.Create(&award).Error; err != nil {
			return err
		}
		log.Printf("🎖️ Achievement awarded: %s → %s", trigger.Name, wallet.ExternalUserID)
	}
	return nil
}

func meetsThreshold(wallet *models.UserWallet, state *models.UserClaimState, ownedCount int64, req map[string]int64) bool {
	if len(req) == 0 {
		return false
	}
	for key, required := range req {
		switch key {
		case "total_purchases":
			if wallet.TotalPurchases < required {
				return false
			}
		case "total_claims":
			if wallet.TotalClaims < required {
				return false
			}
		case "owned_assets":
			if ownedCount < required {
				return false
			}
		case "level":
			if int64(wallet.Level) < required {
				return false
			}
		case "total_cycles":
			if state == nil || state.TotalCycles < required {
				return false
			}
		default:
			return false
		}
	}
	return true
}
