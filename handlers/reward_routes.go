// handlers/reward_routes.go
package handlers

import (
	"wellness-game-system/middleware"
	"wellness-game-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRewardRoutes(app *fiber.App, claimService *services.ClaimService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/user/rewards/daily", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		status, err := claimService.Status(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(status)
	})

	secured.Post("/user/rewards/daily/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Day int `json:"day"`
		}
		if err := c.BodyParser(&req); err != nil || req.Day < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "day must be a positive integer"})
		}

		receipt, err := claimService.Claim(userID, req.Day)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(receipt)
	})

	// Admin ladder management
	admin := app.Group("/s/admin", middleware.UserContextMiddleware())

	admin.Get("/daily-rewards", func(c *fiber.Ctx) error {
		ladder, err := claimService.Ladder()
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(ladder)
	})

	admin.Post("/daily-rewards", func(c *fiber.Ctx) error {
		var req struct {
			Day           int     `json:"day"`
			Coins         int64   `json:"coins"`
			AvatarAssetID *string `json:"avatar_asset_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		reward, err := claimService.CreateDailyReward(req.Day, req.Coins, req.AvatarAssetID)
		if err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(reward)
	})

	admin.Put("/daily-rewards/:id", func(c *fiber.Ctx) error {
		var req struct {
			Coins         *int64  `json:"coins"`
			AvatarAssetID *string `json:"avatar_asset_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		reward, err := claimService.UpdateDailyReward(c.Params("id"), req.Coins, req.AvatarAssetID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(reward)
	})

	admin.Delete("/daily-rewards/:id", func(c *fiber.Ctx) error {
		if err := claimService.DeleteDailyReward(c.Params("id")); err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Daily reward deleted successfully"})
	})
}
