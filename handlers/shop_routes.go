// handlers/shop_routes.go
package handlers

import (
	"wellness-game-system/middleware"
	"wellness-game-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupShopRoutes(app *fiber.App, shopService *services.ShopService, catalogService *services.CatalogService) {
	// 🔓 Public catalog — no user context, but still behind Gateway auth
	app.Get("/shop/assets", func(c *fiber.Ctx) error {
		assets, err := catalogService.ListPurchasable()
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(assets)
	})

	app.Get("/shop/assets/:id", func(c *fiber.Ctx) error {
		asset, err := catalogService.GetAsset(c.Params("id"))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(asset)
	})

	// 🔐 Secured routes — require user context from Gateway
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/shop/purchase", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			AssetID string `json:"asset_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.AssetID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "asset_id is required"})
		}

		result, err := shopService.Purchase(userID, req.AssetID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(result)
	})

	// Admin catalog management
	admin := app.Group("/s/admin", middleware.UserContextMiddleware())
	admin.Get("/assets", catalogService.GetAllAssets)
	admin.Post("/assets", catalogService.CreateAsset)
	admin.Put("/assets/:id", catalogService.UpdateAsset)
	admin.Delete("/assets/:id", catalogService.DeleteAsset)
}
