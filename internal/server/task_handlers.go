// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"taskquest/internal/models"
	"taskquest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTask handles POST /api/tasks
func (s *Server) CreateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	task, err := s.taskService.Create(c.Context(), userID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTasks handles GET /api/tasks
func (s *Server) GetTasks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 50)

	tasks, err := s.taskService.List(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(tasks)
}

// GetTask handles GET /api/tasks/:id
func (s *Server) GetTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	task, err := s.taskService.Get(c.Context(), userID, taskID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(task)
}

// UpdateTask handles PUT /api/tasks/:id
func (s *Server) UpdateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	task, err := s.taskService.Update(c.Context(), userID, taskID, input)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(task)
}

// CompleteTask handles POST /api/tasks/:id/complete
func (s *Server) CompleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	task, err := s.taskService.Complete(c.Context(), userID, taskID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(task)
}

// UncompleteTask handles POST /api/tasks/:id/uncomplete
func (s *Server) UncompleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	task, err := s.taskService.Uncomplete(c.Context(), userID, taskID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(task)
}

// DeleteTask handles DELETE /api/tasks/:id
func (s *Server) DeleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taskService.Delete(c.Context(), userID, taskID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Task deleted"})
}
