package handlers

import (
	"errors"

	"wellness-game-system/services"

	"github.com/gofiber/fiber/v2"
)

// domainError maps a service error to an HTTP response. Unknown errors are
// storage failures and become a 500 with a generic body.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInsufficientFunds):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrSlotMismatch),
		errors.Is(err, services.ErrInvalidDay),
		errors.Is(err, services.ErrClaimTooEarly):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotOwned):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyClaimed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAssetNotFound),
		errors.Is(err, services.ErrWalletNotFound),
		errors.Is(err, services.ErrRewardNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAssetUnavailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error", "cause": err.Error()})
	}
}
