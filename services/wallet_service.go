package services

import (
	"log"
	"math"
	"time"

	"wellness-game-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LevelConfig: XP needed per level step (level n → n+1 costs BaseXPPerLevel * n^1.2)
const BaseXPPerLevel = 100

// xpForNextLevel returns XP required to go from currentLevel to currentLevel+1.
func xpForNextLevel(currentLevel int) int64 {
	if currentLevel < 1 {
		currentLevel = 1
	}
	return int64(float64(BaseXPPerLevel) * math.Pow(float64(currentLevel), 1.2))
}

type WalletService struct {
	DB *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{DB: db}
}

// EnsureWallet ensures a UserWallet row exists (idempotent)
func (s *WalletService) EnsureWallet(externalUserID string) (*models.UserWallet, error) {
	return ensureWalletTx(s.DB, externalUserID)
}

func ensureWalletTx(tx *gorm.DB, externalUserID string) (*models.UserWallet, error) {
	var wallet models.UserWallet
	err := tx.Where("external_user_id = ?", externalUserID).First(&wallet).Error
	if err == gorm.ErrRecordNotFound {
		wallet = models.UserWallet{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Coins:          0,
			Level:          1,
		}
		if err := tx.Create(&wallet).Error; err != nil {
			return nil, err
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetWallet returns the user's wallet, or ErrWalletNotFound.
func (s *WalletService) GetWallet(externalUserID string) (*models.UserWallet, error) {
	var wallet models.UserWallet
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

// Credit adds coins to the wallet. Amount must be >= 0.
func (s *WalletService) Credit(externalUserID string, amount int64) (*models.UserWallet, error) {
	unlock := lockUser(externalUserID)
	defer unlock()

	var updated *models.UserWallet
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		wallet, err := creditWalletTx(tx, externalUserID, amount)
		if err != nil {
			return err
		}
		updated = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Debit removes coins from the wallet. Fails with ErrInsufficientFunds if the
// balance is too low; the balance is never driven negative.
func (s *WalletService) Debit(externalUserID string, amount int64) (*models.UserWallet, error) {
	unlock := lockUser(externalUserID)
	defer unlock()

	var updated *models.UserWallet
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		wallet, err := debitWalletTx(tx, externalUserID, amount)
		if err != nil {
			return err
		}
		updated = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// creditWalletTx applies a credit inside an existing transaction.
func creditWalletTx(tx *gorm.DB, externalUserID string, amount int64) (*models.UserWallet, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	wallet, err := ensureWalletTx(tx, externalUserID)
	if err != nil {
		return nil, err
	}
	wallet.Coins += amount
	if err := tx.Save(wallet).Error; err != nil {
		return nil, err
	}
	return wallet, nil
}

// debitWalletTx applies a debit inside an existing transaction.
func debitWalletTx(tx *gorm.DB, externalUserID string, amount int64) (*models.UserWallet, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	var wallet models.UserWallet
	if err := tx.Where("external_user_id = ?", externalUserID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	if wallet.Coins < amount {
		return nil, ErrInsufficientFunds
	}
	wallet.Coins -= amount
	if err := tx.Save(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// AwardTaskCompletion atomically credits coins and XP earned outside the shop
// (health quizzes, physical activities, meditation sessions) and applies
// level-ups — returns the updated wallet.
func (s *WalletService) AwardTaskCompletion(externalUserID string, coins, xp int64, reason string) (*models.UserWallet, error) {
	if coins < 0 || xp < 0 {
		return nil, ErrInvalidAmount
	}

	unlock := lockUser(externalUserID)
	defer unlock()

	var updated *models.UserWallet
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		wallet, err := ensureWalletTx(tx, externalUserID)
		if err != nil {
			return err
		}

		wallet.Coins += coins
		wallet.TotalXP += xp

		// Level-up logic: accumulate until enough for next level
		for wallet.TotalXP >= cumulativeXPForLevel(wallet.Level+1) {
			wallet.Level++
			now := time.Now()
			wallet.LastLevelUpAt = &now
		}

		if err := tx.Save(wallet).Error; err != nil {
			return err
		}

		// Auto-award achievements (level thresholds)
		achSvc := NewAchievementService(s.DB)
		if err := achSvc.autoAwardTx(tx, wallet); err != nil {
			log.Printf("⚠️ achievement check failed for %s: %v", externalUserID, err)
		}

		updated = &models.UserWallet{}
		*updated = *wallet

		log.Printf("🎮 Task reward: %s → +%d coins, +%d XP (level %d, reason: %s)",
			externalUserID, coins, xp, wallet.Level, reason)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// cumulativeXPForLevel returns total XP required to reach the given level.
func cumulativeXPForLevel(level int) int64 {
	var total int64
	for l := 1; l < level; l++ {
		total += xpForNextLevel(l)
	}
	return total
}
