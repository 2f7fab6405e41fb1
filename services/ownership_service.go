package services

import (
	"wellness-game-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OwnershipService struct {
	DB *gorm.DB
}

func NewOwnershipService(db *gorm.DB) *OwnershipService {
	return &OwnershipService{DB: db}
}

// Owns reports whether the user owns the asset.
func (s *OwnershipService) Owns(externalUserID, assetID string) (bool, error) {
	return ownsTx(s.DB, externalUserID, assetID)
}

func ownsTx(tx *gorm.DB, externalUserID, assetID string) (bool, error) {
	var count int64
	err := tx.Model(&models.OwnedAsset{}).
		Where("external_user_id = ? AND asset_id = ?", externalUserID, assetID).
		Count(&count).Error
	return count > 0, err
}

// Grant adds the asset to the user's inventory. Granting an already-owned
// asset is a no-op, not an error — purchase and claim retries must be safe
// to repeat.
func (s *OwnershipService) Grant(externalUserID, assetID string, source models.AcquireSource) error {
	return grantTx(s.DB, externalUserID, assetID, source)
}

func grantTx(tx *gorm.DB, externalUserID, assetID string, source models.AcquireSource) error {
	record := models.OwnedAsset{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		AssetID:        assetID,
		Source:         source,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_user_id"}, {Name: "asset_id"}},
		DoNothing: true,
	}).Create(&record).Error
}

// ListOwned returns every ownership record for the user, newest first.
func (s *OwnershipService) ListOwned(externalUserID string) ([]models.OwnedAsset, error) {
	var owned []models.OwnedAsset
	err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("acquired_at DESC").
		Find(&owned).Error
	return owned, err
}

func ownedCountTx(tx *gorm.DB, externalUserID string) (int64, error) {
	var count int64
	err := tx.Model(&models.OwnedAsset{}).
		Where("external_user_id = ?", externalUserID).
		Count(&count).Error
	return count, err
}
