package services

import (
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"wellness-game-system/models"
	"wellness-game-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ListPurchasable returns the shop-facing catalog: published assets in
// purchasable slots. Base layers (body, head mesh, eyes, nose) never appear.
func (s *CatalogService) ListPurchasable() ([]models.Asset, error) {
	var assets []models.Asset
	err := s.DB.Where("status = ? AND slot_type IN ?", models.AssetStatusPublished, models.PurchasableSlotTypes).
		Order("created_at DESC").
		Find(&assets).Error
	return assets, err
}

// GetAsset returns one catalog asset by ID.
func (s *CatalogService) GetAsset(id string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.DB.Where("id = ?", id).First(&asset).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// --- Admin Handlers ---

// CreateAsset creates a new draft asset with GLB model and preview image (Admin only)
func (s *CatalogService) CreateAsset(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	slotType := models.SlotType(c.FormValue("slot_type"))
	if !models.IsPurchasableSlot(slotType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid or reserved slot_type"})
	}

	price, err := strconv.ParseInt(c.FormValue("price", "0"), 10, 64)
	if err != nil || price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be a non-negative integer"})
	}

	asset := &models.Asset{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: c.FormValue("description"),
		SlotType:    slotType,
		Price:       price,
		Status:      models.AssetStatusDraft,
	}

	// Optional scheduled publish
	if publishAtStr := c.FormValue("publish_at"); publishAtStr != "" {
		publishAt, err := time.Parse(time.RFC3339, publishAtStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "publish_at must be RFC3339"})
		}
		asset.Status = models.AssetStatusScheduled
		asset.PublishAt = &publishAt
	}

	// GLB model upload → R2 (small, public asset)
	if modelFile, err := c.FormFile("model_file"); err == nil && modelFile.Size > 0 {
		ext := filepath.Ext(modelFile.Filename)
		if ext == "" {
			ext = ".glb"
		}
		modelKey := "assets/models/" + asset.Slug + "-" + uuid.NewString() + ext
		modelURL, err := utils.UploadFileToR2(modelFile, modelKey)
		if err != nil {
			log.Printf("❌ R2 upload failed for asset model: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload model file"})
		}
		asset.ModelURL = modelURL
	}

	// Preview image upload → R2
	if imageFile, err := c.FormFile("image"); err == nil && imageFile.Size > 0 {
		ext := filepath.Ext(imageFile.Filename)
		if ext == "" {
			ext = ".png"
		}
		imageKey := "assets/previews/" + asset.Slug + "-" + uuid.NewString() + ext
		imageURL, err := utils.UploadFileToR2(imageFile, imageKey)
		if err != nil {
			log.Printf("❌ R2 upload failed for asset preview: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload preview image"})
		}
		asset.ImageURL = imageURL
	}

	if err := s.DB.Create(asset).Error; err != nil {
		log.Printf("DB Error creating asset: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create asset"})
	}

	return c.Status(fiber.StatusCreated).JSON(asset)
}

// UpdateAsset updates catalog metadata (Admin only). Price and slot changes
// are allowed only while the asset is still a draft — published assets are
// immutable apart from status.
func (s *CatalogService) UpdateAsset(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid asset ID"})
	}

	var asset models.Asset
	if err := s.DB.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Asset not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Name        *string             `json:"name"`
		Description *string             `json:"description"`
		Price       *int64              `json:"price"`
		SlotType    *models.SlotType    `json:"slot_type"`
		Status      *models.AssetStatus `json:"status"`
		PublishAt   *time.Time          `json:"publish_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	draft := asset.Status == models.AssetStatusDraft || asset.Status == models.AssetStatusScheduled
	if (req.Price != nil || req.SlotType != nil) && !draft {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "published assets are immutable"})
	}

	if req.Name != nil {
		asset.Name = *req.Name
		asset.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		asset.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price must be non-negative"})
		}
		asset.Price = *req.Price
	}
	if req.SlotType != nil {
		if !models.IsPurchasableSlot(*req.SlotType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid or reserved slot_type"})
		}
		asset.SlotType = *req.SlotType
	}
	if req.Status != nil {
		asset.Status = *req.Status
	}
	if req.PublishAt != nil {
		asset.PublishAt = req.PublishAt
	}

	if err := s.DB.Save(&asset).Error; err != nil {
		log.Printf("DB Error updating asset: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update asset"})
	}

	return c.JSON(asset)
}

// DeleteAsset soft-deletes a catalog asset (Admin only). Ownership records of
// users who already bought it are untouched.
func (s *CatalogService) DeleteAsset(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid asset ID"})
	}

	var asset models.Asset
	if err := s.DB.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Asset not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.DB.Delete(&asset).Error; err != nil {
		log.Printf("DB Error deleting asset: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete asset"})
	}

	return c.JSON(fiber.Map{"message": "Asset deleted successfully"})
}

// GetAllAssets fetches all catalog assets regardless of status (Admin only)
func (s *CatalogService) GetAllAssets(c *fiber.Ctx) error {
	var assets []models.Asset
	if err := s.DB.Order("created_at DESC").Find(&assets).Error; err != nil {
		log.Printf("DB Error fetching assets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch assets"})
	}
	return c.JSON(assets)
}
