// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/requests/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	request, err := s.friendService.SendRequest(c.Context(), userID, targetUserID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetPendingRequests handles GET /api/friends/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	requests, err := s.friendService.IncomingRequests(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(requests)
}

// GetSentRequests handles GET /api/friends/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	requests, err := s.friendService.SentRequests(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(requests)
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	friendship, err := s.friendService.Accept(c.Context(), userID, requestID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(friendship)
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	if err := s.friendService.Reject(c.Context(), userID, requestID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Friend request rejected"})
}

// CancelFriendRequest handles DELETE /api/friends/requests/:requestId
func (s *Server) CancelFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	if err := s.friendService.Cancel(c.Context(), userID, requestID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Friend request cancelled"})
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	friends, err := s.friendService.Friends(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(friends)
}

// GetFriendshipStatus handles GET /api/friends/status/:userId
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	friends, err := s.friendRepo.AreFriends(c.Context(), userID, otherID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"friends": friends})
}

// RemoveFriend handles DELETE /api/friends/:userId
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.Unfriend(c.Context(), userID, otherID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Friend removed"})
}
