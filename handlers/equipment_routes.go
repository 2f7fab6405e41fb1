// handlers/equipment_routes.go
package handlers

import (
	"wellness-game-system/middleware"
	"wellness-game-system/models"
	"wellness-game-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEquipmentRoutes(app *fiber.App, equipmentService *services.EquipmentService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/user/equipment", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		equipped, err := equipmentService.EquipmentMap(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"equipped_assets": equipped})
	})

	secured.Post("/user/equipment/equip", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			SlotType models.SlotType `json:"slot_type"`
			AssetID  string          `json:"asset_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.SlotType == "" || req.AssetID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slot_type and asset_id are required"})
		}

		equipped, err := equipmentService.Equip(userID, req.SlotType, req.AssetID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"equipped_assets": equipped})
	})

	secured.Post("/user/equipment/unequip", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			SlotType models.SlotType `json:"slot_type"`
		}
		if err := c.BodyParser(&req); err != nil || req.SlotType == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slot_type is required"})
		}

		equipped, err := equipmentService.Unequip(userID, req.SlotType)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"equipped_assets": equipped})
	})
}
