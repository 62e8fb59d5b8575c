// handlers/shop_routes.go
package handlers

import (
	"fmt"
	"strings"

	"lifequest-system/middleware"
	"lifequest-system/models"
	"lifequest-system/services"
	"lifequest-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupShopRoutes(app *fiber.App, shopService *services.ShopService) {
	secured := app.Group("/shop", middleware.UserContextMiddleware())

	secured.Get("/items", func(c *fiber.Ctx) error {
		items, err := shopService.ListItems(c.Query("type"))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(items)
	})

	secured.Post("/items/:id/buy", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := shopService.BuyItem(userID, c.Params("id")); err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "item purchased"})
	})

	// Admin: catalog management with R2 image upload.
	admin := app.Group("/admin/shop", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	admin.Post("/items", func(c *fiber.Ctx) error {
		item := models.ShopItem{
			ID:             uuid.NewString(),
			Name:           c.FormValue("name"),
			Description:    c.FormValue("description"),
			Rarity:         models.ItemRarity(c.FormValue("rarity", string(models.RarityCommon))),
			Type:           models.ItemType(c.FormValue("type")),
			IsDonationOnly: strings.EqualFold(c.FormValue("is_donation_only"), "true"),
			IsActive:       true,
		}
		if item.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		switch item.Type {
		case models.ItemTypeAvatar, models.ItemTypeBackground, models.ItemTypeIcon, models.ItemTypeBoost:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item type"})
		}
		if priceStr := c.FormValue("price"); priceStr != "" {
			if _, err := fmt.Sscan(priceStr, &item.Price); err != nil || item.Price < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid price"})
			}
		}

		if item.Type == models.ItemTypeBoost {
			var multiplier float64
			var minutes int
			if _, err := fmt.Sscan(c.FormValue("multiplier", "1.5"), &multiplier); err != nil || multiplier < 1 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid boost multiplier"})
			}
			if _, err := fmt.Sscan(c.FormValue("duration_minutes", "0"), &minutes); err != nil || minutes <= 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid boost duration"})
			}
			boostType := models.BoostType(c.FormValue("boost_type"))
			if boostType != models.BoostTypeXP && boostType != models.BoostTypeMoney {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid boost type"})
			}
			item.BoostType = &boostType
			item.Multiplier = &multiplier
			item.DurationMinutes = &minutes
		}

		if fileHeader, err := c.FormFile("image"); err == nil {
			url, err := utils.UploadImageToR2(fileHeader, fmt.Sprintf("shop_items/%s.png", item.ID))
			if err != nil {
				return domainError(c, err)
			}
			item.ImageURL = url
		}

		if err := shopService.CreateItem(&item); err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	admin.Patch("/items/:id/deactivate", func(c *fiber.Ctx) error {
		res := shopService.DB.Model(&models.ShopItem{}).
			Where("id = ?", c.Params("id")).
			Update("is_active", false)
		if res.Error != nil {
			return domainError(c, res.Error)
		}
		if res.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
		}
		return c.JSON(fiber.Map{"message": "item deactivated"})
	})
}
