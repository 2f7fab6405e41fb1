package services

import (
	"log"

	"wellness-game-system/models"

	"gorm.io/gorm"
)

type ShopService struct {
	DB *gorm.DB
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{DB: db}
}

// PurchaseResult reports the outcome of a purchase.
type PurchaseResult struct {
	AssetID      string `json:"asset_id"`
	AlreadyOwned bool   `json:"already_owned"`
	CoinsSpent   int64  `json:"coins_spent"`
	Balance      int64  `json:"balance"`
}

// Purchase buys a catalog asset for the user: one transaction covering the
// availability check, the debit and the ownership grant. Buying an asset the
// user already owns is a no-op success — retried requests must not
// double-charge.
func (s *ShopService) Purchase(externalUserID, assetID string) (*PurchaseResult, error) {
	unlock := lockUser(externalUserID)
	defer unlock()

	var result *PurchaseResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.Where("id = ?", assetID).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrAssetNotFound
			}
			return err
		}
		if !asset.Purchasable() {
			return ErrAssetUnavailable
		}

		wallet, err := ensureWalletTx(tx, externalUserID)
		if err != nil {
			return err
		}

		owned, err := ownsTx(tx, externalUserID, assetID)
		if err != nil {
			return err
		}
		if owned {
			result = &PurchaseResult{
				AssetID:      assetID,
				AlreadyOwned: true,
				Balance:      wallet.Coins,
			}
			return nil
		}

		if wallet.Coins < asset.Price {
			return ErrInsufficientFunds
		}
		wallet.Coins -= asset.Price
		wallet.TotalPurchases++
		if err := tx.Save(wallet).Error; err != nil {
			return err
		}

		if err := grantTx(tx, externalUserID, assetID, models.AcquireSourcePurchase); err != nil {
			return err
		}

		achSvc := NewAchievementService(s.DB)
		if err := achSvc.autoAwardTx(tx, wallet); err != nil {
			log.Printf("⚠️ achievement check failed for %s: %v", externalUserID, err)
		}

		result = &PurchaseResult{
			AssetID:    assetID,
			CoinsSpent: asset.Price,
			Balance:    wallet.Coins,
		}
		log.Printf("🛒 Purchase: %s bought %s (%s) for %d coins, balance now %d",
			externalUserID, asset.Name, asset.ID, asset.Price, wallet.Coins)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
