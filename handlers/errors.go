// handlers/errors.go
package handlers

import (
	"errors"
	"log"

	"lifequest-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// domainError translates engine errors into HTTP responses. Domain
// rule violations map to 4xx with their message; anything unknown is
// a 500 and gets logged.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyOwned),
		errors.Is(err, services.ErrBoostAlreadyActive),
		errors.Is(err, services.ErrFriendRequestExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrItemNotOwned),
		errors.Is(err, services.ErrSpinNotAvailable),
		errors.Is(err, services.ErrTradeNotPending),
		errors.Is(err, services.ErrRequestNotPending),
		errors.Is(err, services.ErrInvalidOffer),
		errors.Is(err, services.ErrSelfTrade),
		errors.Is(err, services.ErrSelfFriendRequest),
		errors.Is(err, services.ErrTaskAlreadyCompleted),
		errors.Is(err, services.ErrInvalidDifficulty):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("❌ [HTTP] internal error on %s: %v", c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
