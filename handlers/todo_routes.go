// handlers/todo_routes.go
package handlers

import (
	"time"

	"lifequest-system/middleware"
	"lifequest-system/models"
	"lifequest-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTodoRoutes(app *fiber.App, todoService *services.TodoService) {
	todos := app.Group("/todos", middleware.UserContextMiddleware())

	todos.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		list, err := todoService.ListTodos(userID, c.QueryBool("completed"))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(list)
	})

	todos.Post("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			Deadline    *time.Time `json:"deadline"`
			Difficulty  int        `json:"difficulty"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}
		if req.Difficulty == 0 {
			req.Difficulty = 1
		}

		todo := models.Todo{
			UserID:      userID,
			Title:       req.Title,
			Description: req.Description,
			Deadline:    req.Deadline,
			Difficulty:  req.Difficulty,
		}
		if err := todoService.CreateTodo(&todo); err != nil {
			return domainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(todo)
	})

	todos.Get("/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		todo, err := todoService.GetTodo(userID, c.Params("id"))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(todo)
	})

	todos.Patch("/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			Deadline    *time.Time `json:"deadline"`
			Difficulty  int        `json:"difficulty"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}
		if req.Difficulty == 0 {
			req.Difficulty = 1
		}
		todo, err := todoService.UpdateTodo(userID, c.Params("id"), req.Title, req.Description, req.Deadline, req.Difficulty)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(todo)
	})

	todos.Delete("/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := todoService.DeleteTodo(userID, c.Params("id")); err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{"message": "task deleted"})
	})

	todos.Post("/:id/execute", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		xp, coins, err := todoService.ExecuteTask(userID, c.Params("id"))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "task completed",
			"xp":      xp,
			"coins":   coins,
		})
	})
}
