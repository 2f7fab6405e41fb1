package services

import (
	"wellness-game-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EquipmentService struct {
	DB *gorm.DB
}

func NewEquipmentService(db *gorm.DB) *EquipmentService {
	return &EquipmentService{DB: db}
}

// EquippedItem is one entry of the user-facing equipment map.
type EquippedItem struct {
	AssetID  string `json:"asset_id"`
	ModelURL string `json:"model_url"`
	ImageURL string `json:"image_url"`
}

// Equip wears the asset in the given slot and returns the full equipment map.
//
// Equipping a costume clears every other slot in the same transaction.
// Equipping a non-costume item only replaces its own slot — an equipped
// costume stays on. The asymmetry matches observed product behavior and is
// deliberate; do not "fix" it without product sign-off.
func (s *EquipmentService) Equip(externalUserID string, slot models.SlotType, assetID string) (map[models.SlotType]EquippedItem, error) {
	unlock := lockUser(externalUserID)
	defer unlock()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		owned, err := ownsTx(tx, externalUserID, assetID)
		if err != nil {
			return err
		}
		if !owned {
			return ErrNotOwned
		}

		var asset models.Asset
		if err := tx.Where("id = ?", assetID).First(&asset).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrAssetNotFound
			}
			return err
		}
		if asset.SlotType != slot {
			return ErrSlotMismatch
		}

		if slot == models.SlotCostume {
			if err := tx.Where("external_user_id = ? AND slot_type <> ?", externalUserID, models.SlotCostume).
				Delete(&models.EquippedAsset{}).Error; err != nil {
				return err
			}
		}

		entry := models.EquippedAsset{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			SlotType:       slot,
			AssetID:        assetID,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_user_id"}, {Name: "slot_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"asset_id", "equipped_at"}),
		}).Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return s.EquipmentMap(externalUserID)
}

// Unequip clears the slot. Clearing an empty slot is a no-op.
func (s *EquipmentService) Unequip(externalUserID string, slot models.SlotType) (map[models.SlotType]EquippedItem, error) {
	unlock := lockUser(externalUserID)
	defer unlock()

	if err := s.DB.Where("external_user_id = ? AND slot_type = ?", externalUserID, slot).
		Delete(&models.EquippedAsset{}).Error; err != nil {
		return nil, err
	}
	return s.EquipmentMap(externalUserID)
}

// EquipmentMap returns slot → worn asset with render URLs resolved.
func (s *EquipmentService) EquipmentMap(externalUserID string) (map[models.SlotType]EquippedItem, error) {
	var entries []models.EquippedAsset
	if err := s.DB.Where("external_user_id = ?", externalUserID).Find(&entries).Error; err != nil {
		return nil, err
	}

	result := make(map[models.SlotType]EquippedItem, len(entries))
	if len(entries) == 0 {
		return result, nil
	}

	assetIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		assetIDs = append(assetIDs, e.AssetID)
	}
	var assets []models.Asset
	if err := s.DB.Where("id IN ?", assetIDs).Find(&assets).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	for _, e := range entries {
		item := EquippedItem{AssetID: e.AssetID}
		if a, ok := byID[e.AssetID]; ok {
			item.ModelURL = a.ModelURL
			item.ImageURL = a.ImageURL
		}
		result[e.SlotType] = item
	}
	return result, nil
}
