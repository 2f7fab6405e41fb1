package services

import (
	"testing"

	"wellness-game-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns an isolated in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.UserWallet{},
		&models.Asset{},
		&models.OwnedAsset{},
		&models.EquippedAsset{},
		&models.DailyReward{},
		&models.UserClaimState{},
		&models.AchievementType{},
		&models.UserAchievement{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedAsset(t *testing.T, db *gorm.DB, name string, slot models.SlotType, price int64, status models.AssetStatus) *models.Asset {
	t.Helper()

	asset := models.Asset{
		ID:       uuid.NewString(),
		Name:     name,
		SlotType: slot,
		Price:    price,
		ModelURL: "https://cdn.example.com/models/" + name + ".glb",
		ImageURL: "https://cdn.example.com/images/" + name + ".png",
		Status:   status,
	}
	if err := db.Create(&asset).Error; err != nil {
		t.Fatalf("failed to seed asset %q: %v", name, err)
	}
	return &asset
}

// seedLadder creates a reward ladder with the given coin amounts as days 1..N.
func seedLadder(t *testing.T, db *gorm.DB, coins ...int64) []models.DailyReward {
	t.Helper()

	ladder := make([]models.DailyReward, 0, len(coins))
	for i, c := range coins {
		reward := models.DailyReward{
			ID:    uuid.NewString(),
			Day:   i + 1,
			Coins: c,
		}
		if err := db.Create(&reward).Error; err != nil {
			t.Fatalf("failed to seed reward day %d: %v", i+1, err)
		}
		ladder = append(ladder, reward)
	}
	return ladder
}

// giveCoins seeds a wallet with a starting balance.
func giveCoins(t *testing.T, db *gorm.DB, externalUserID string, coins int64) {
	t.Helper()

	wallet, err := ensureWalletTx(db, externalUserID)
	if err != nil {
		t.Fatalf("failed to ensure wallet for %s: %v", externalUserID, err)
	}
	wallet.Coins = coins
	if err := db.Save(wallet).Error; err != nil {
		t.Fatalf("failed to set balance for %s: %v", externalUserID, err)
	}
}
