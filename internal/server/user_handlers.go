// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"taskquest/internal/models"
	"taskquest/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	ranks, err := s.rankRepo.List(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": user,
		"rank": models.CurrentRank(ranks, user.XP),
	})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username  *string `json:"username"`
		Email     *string `json:"email"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	if req.Username != nil {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		if err := validation.ValidateEmail(*req.Email); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		taken, err := s.userRepo.EmailTaken(c.Context(), *req.Email, userID)
		if err != nil {
			return serviceError(c, err)
		}
		if taken {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError("Email is already in use"))
		}
		user.Email = *req.Email
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(user)
}

// ChangePassword handles PUT /api/users/me/password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Current password is incorrect"))
	}
	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	user.Password = string(hashed)

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}
	p := parsePagination(c, 20)

	users, err := s.userRepo.Search(c.Context(), query, userID, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(users)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	ranks, err := s.rankRepo.List(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user": user,
		"rank": models.CurrentRank(ranks, user.XP),
	})
}
