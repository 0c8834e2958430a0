// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"taskquest/internal/models"

	"github.com/gofiber/fiber/v2"
)

// InviteCollaborators handles POST /api/tasks/:id/collaborators
func (s *Server) InviteCollaborators(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserIDs []uint `json:"user_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.collabService.Invite(c.Context(), userID, taskID, req.UserIDs)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// RemoveCollaborator handles DELETE /api/tasks/:id/collaborators/:userId
func (s *Server) RemoveCollaborator(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	taskID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	collaboratorID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.collabService.Remove(c.Context(), userID, taskID, collaboratorID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Collaborator removed"})
}

// GetCollaborations handles GET /api/collaborations
func (s *Server) GetCollaborations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 50)

	tasks, err := s.collabService.Collaborations(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(tasks)
}

// GetInvitations handles GET /api/collaborations/invitations
func (s *Server) GetInvitations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	invitations, err := s.collabService.Invitations(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(invitations)
}

// AcceptInvitation handles POST /api/collaborations/invitations/:invitationId/accept
func (s *Server) AcceptInvitation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	invitationID, err := s.parseID(c, "invitationId")
	if err != nil {
		return nil
	}

	collab, err := s.collabService.Respond(c.Context(), userID, invitationID, true)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(collab)
}

// RejectInvitation handles POST /api/collaborations/invitations/:invitationId/reject
func (s *Server) RejectInvitation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	invitationID, err := s.parseID(c, "invitationId")
	if err != nil {
		return nil
	}

	if _, err := s.collabService.Respond(c.Context(), userID, invitationID, false); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Invitation rejected"})
}
