// handlers/account_routes.go
package handlers

import (
	"lifequest-system/middleware"
	"lifequest-system/models"
	"lifequest-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupAccountRoutes(app *fiber.App,
	profileService *services.ProfileService,
	shopService *services.ShopService,
	achievementService *services.AchievementService,
	streakService *services.StreakService,
	progressService *services.ProgressService,
) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		profile, err := profileService.GetProfile(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(profile)
	})

	secured.Get("/profile/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid profile ID"})
		}
		profile, err := profileService.GetProfileByID(id)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(profile)
	})

	secured.Get("/streak", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		streak, err := streakService.GetStreak(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(streak)
	})

	secured.Get("/statistic", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		stat, err := progressService.GetStatistic(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(stat)
	})

	secured.Get("/inventory", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		entries, err := shopService.ListInventory(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(entries)
	})

	secured.Patch("/inventory/:id/apply", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		item, err := shopService.ApplyItem(userID, c.Params("id"))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "item applied", "item": item})
	})

	secured.Get("/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if c.QueryBool("all") {
			var achievements []models.Achievement
			if err := achievementService.DB.Find(&achievements).Error; err != nil {
				return domainError(c, err)
			}
			return c.JSON(achievements)
		}

		var earned []models.UserAchievement
		query := achievementService.DB.Preload("Achievement").Where("user_id = ?", userID)
		if c.Query("claimed") != "" {
			query = query.Where("is_claimed = ?", c.QueryBool("claimed"))
		}
		if err := query.Find(&earned).Error; err != nil {
			return domainError(c, err)
		}
		return c.JSON(earned)
	})

	secured.Patch("/achievements/:id/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := achievementService.ClaimAchievement(userID, c.Params("id")); err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "achievement claimed"})
	})

	// Admin: manage the achievement catalog.
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	admin.Post("/achievements", func(c *fiber.Ctx) error {
		var req struct {
			Code          string           `json:"code"`
			Title         string           `json:"title"`
			Description   string           `json:"description"`
			Trigger       string           `json:"trigger"`
			Condition     map[string]int64 `json:"condition"`
			RewardXP      int64            `json:"reward_xp"`
			RewardCoins   int64            `json:"reward_coins"`
			RewardItemIDs []string         `json:"reward_item_ids"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Code == "" || req.Trigger == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code and trigger are required"})
		}

		achievement := models.Achievement{
			ID:            uuid.NewString(),
			Code:          req.Code,
			Title:         req.Title,
			Description:   req.Description,
			Trigger:       req.Trigger,
			Condition:     req.Condition,
			RewardXP:      req.RewardXP,
			RewardCoins:   req.RewardCoins,
			RewardItemIDs: req.RewardItemIDs,
			OneTime:       true,
		}
		if err := achievementService.DB.Create(&achievement).Error; err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(achievement)
	})
}
