// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetRanks handles GET /api/ranks. The ladder is public reference data.
func (s *Server) GetRanks(c *fiber.Ctx) error {
	ranks, err := s.rankRepo.List(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(ranks)
}
