// handlers/trade_routes.go
package handlers

import (
	"lifequest-system/middleware"
	"lifequest-system/models"
	"lifequest-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupTradeRoutes(app *fiber.App, tradeService *services.TradeService, friendService *services.FriendService) {
	trades := app.Group("/trades", middleware.UserContextMiddleware())

	trades.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := tradeService.ListTrades(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(list)
	})

	trades.Post("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			RecipientID    string            `json:"recipient_id"`
			RequesterOffer models.TradeOffer `json:"requester_offer"`
			RecipientOffer models.TradeOffer `json:"recipient_offer"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if _, err := uuid.Parse(req.RecipientID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid recipient ID"})
		}
		trade, err := tradeService.CreateTrade(userID, req.RecipientID, req.RequesterOffer, req.RecipientOffer)
		if err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(trade)
	})

	trades.Patch("/:id/accept", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := tradeService.AcceptTrade(c.Params("id"), userID); err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "trade accepted"})
	})

	trades.Patch("/:id/reject", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := tradeService.RejectTrade(c.Params("id"), userID); err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "trade rejected"})
	})

	friends := app.Group("/friends", middleware.UserContextMiddleware())

	friends.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := friendService.ListFriends(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"friends": list})
	})

	friends.Get("/requests", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		requests, err := friendService.ListPendingRequests(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(requests)
	})

	friends.Post("/requests", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			RecipientID string `json:"recipient_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if _, err := uuid.Parse(req.RecipientID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid recipient ID"})
		}
		relation, err := friendService.RequestFriend(userID, req.RecipientID)
		if err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(relation)
	})

	friends.Patch("/requests/:id/accept", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := friendService.AcceptFriend(c.Params("id"), userID); err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "friend request accepted"})
	})

	friends.Patch("/requests/:id/reject", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := friendService.RejectFriend(c.Params("id"), userID); err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "friend request rejected"})
	})
}
