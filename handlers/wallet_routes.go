// handlers/wallet_routes.go
package handlers

import (
	"wellness-game-system/middleware"
	"wellness-game-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App, walletService *services.WalletService, ownershipService *services.OwnershipService, achievementService *services.AchievementService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/user/wallet", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		wallet, err := walletService.EnsureWallet(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(wallet)
	})

	// Task completions (health quizzes, activities, meditation) report their
	// coin/XP payout here once the activity itself is finished.
	secured.Post("/user/rewards/task-completion", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Coins  int64  `json:"coins"`
			XP     int64  `json:"xp"`
			Source string `json:"source"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Source == "" {
			req.Source = "task_completion"
		}

		wallet, err := walletService.AwardTaskCompletion(userID, req.Coins, req.XP, req.Source)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(wallet)
	})

	secured.Get("/user/assets", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		owned, err := ownershipService.ListOwned(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(owned)
	})

	secured.Get("/user/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		achievements, err := achievementService.ListForUser(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(achievements)
	})
}
