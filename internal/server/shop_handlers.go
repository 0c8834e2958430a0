// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetShopItems handles GET /api/shop/items
func (s *Server) GetShopItems(c *fiber.Ctx) error {
	items, err := s.shopService.Catalog(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(items)
}

// GetInventory handles GET /api/shop/inventory
func (s *Server) GetInventory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	inventory, err := s.shopService.Inventory(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(inventory)
}

// UnlockItem handles POST /api/shop/items/:id/unlock
func (s *Server) UnlockItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.shopService.Unlock(c.Context(), userID, itemID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// PurchaseItem handles POST /api/shop/items/:id/purchase
func (s *Server) PurchaseItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.shopService.Purchase(c.Context(), userID, itemID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entry)
}

// EquipItem handles POST /api/shop/inventory/:id/equip
func (s *Server) EquipItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	inventoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.shopService.Equip(c.Context(), userID, inventoryID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entry)
}

// UnequipItem handles POST /api/shop/inventory/:id/unequip
func (s *Server) UnequipItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	inventoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.shopService.Unequip(c.Context(), userID, inventoryID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entry)
}

// GetCharacter handles GET /api/character
func (s *Server) GetCharacter(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	view, err := s.shopService.Character(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(view)
}
