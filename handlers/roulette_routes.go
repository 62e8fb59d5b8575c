// handlers/roulette_routes.go
package handlers

import (
	"lifequest-system/middleware"
	"lifequest-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRouletteRoutes(app *fiber.App, rouletteService *services.RouletteService) {
	roulette := app.Group("/roulette", middleware.UserContextMiddleware())

	roulette.Get("/rewards", func(c *fiber.Ctx) error {
		return c.JSON(rouletteService.RewardsList())
	})

	roulette.Post("/spin", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		reward, err := rouletteService.Spin(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "spin complete", "reward": reward})
	})
}
