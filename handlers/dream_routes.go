// handlers/dream_routes.go
package handlers

import (
	"fmt"

	"lifequest-system/middleware"
	"lifequest-system/models"
	"lifequest-system/services"
	"lifequest-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupDreamRoutes(app *fiber.App, dreamService *services.DreamService) {
	dreams := app.Group("/dreams", middleware.UserContextMiddleware())

	dreams.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := dreamService.ListDreams(userID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(list)
	})

	dreams.Post("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Category    string `json:"category"`
			Price       int64  `json:"price"`
			IsPrivate   bool   `json:"is_private"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}

		dream := models.Dream{
			UserID:      userID,
			Title:       req.Title,
			Description: req.Description,
			Category:    models.DreamCategory(req.Category),
			Price:       req.Price,
			IsPrivate:   req.IsPrivate,
		}
		if err := dreamService.CreateDream(&dream); err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dream)
	})

	dreams.Get("/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		dream, err := dreamService.GetDream(userID, c.Params("id"))
		if err != nil {
			return domainError(c, err)
		}
		likes, err := dreamService.CountLikes(dream.ID)
		if err != nil {
			return domainError(c, err)
		}
		progress, err := dreamService.Progress(dream.ID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{
			"dream":    dream,
			"likes":    likes,
			"progress": progress,
		})
	})

	dreams.Patch("/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Category    string `json:"category"`
			Price       int64  `json:"price"`
			IsPrivate   bool   `json:"is_private"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}
		dream, err := dreamService.UpdateDream(userID, c.Params("id"), req.Title, req.Description,
			models.DreamCategory(req.Category), req.Price, req.IsPrivate)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(dream)
	})

	dreams.Delete("/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := dreamService.DeleteDream(userID, c.Params("id")); err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "dream deleted"})
	})

	dreams.Post("/:id/like", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		liked, err := dreamService.ToggleLike(userID, c.Params("id"))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"liked": liked})
	})

	dreams.Post("/:id/images", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		dream, err := dreamService.GetDream(userID, c.Params("id"))
		if err != nil {
			return domainError(c, err)
		}
		if dream.UserID != userID {
			return domainError(c, services.ErrNotAuthorized)
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
		}
		image := models.DreamImage{
			ID:        uuid.NewString(),
			DreamID:   dream.ID,
			IsPreview: c.FormValue("is_preview") == "true",
		}
		url, err := utils.UploadImageToR2(fileHeader, fmt.Sprintf("dreams/%s/%s.png", dream.ID, image.ID))
		if err != nil {
			return domainError(c, err)
		}
		image.ImageURL = url
		if err := dreamService.DB.Create(&image).Error; err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(image)
	})

	dreams.Post("/:id/steps/generate", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		steps, err := dreamService.GenerateSteps(c.Context(), userID, c.Params("id"))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"steps": steps})
	})

	dreams.Post("/:id/steps", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Steps []services.DreamStep `json:"steps"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if len(req.Steps) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "at least one step is required"})
		}
		if err := dreamService.CreateSteps(userID, c.Params("id"), req.Steps); err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "steps created"})
	})
}
