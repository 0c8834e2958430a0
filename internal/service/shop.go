package service

import (
	"context"
	"errors"

	"taskquest/internal/cache"
	"taskquest/internal/models"
	"taskquest/internal/observability"
	"taskquest/internal/repository"

	"gorm.io/gorm"
)

// CharacterView is the assembled avatar: the user, their current rank, and
// the equipped cosmetics.
type CharacterView struct {
	User     *models.User           `json:"user"`
	Rank     *models.Rank           `json:"rank,omitempty"`
	Equipped []models.InventoryItem `json:"equipped"`
}

// ShopService covers the cosmetic shop and the equip-slot manager. Unlocking
// is rank-gated, purchasing is gold-gated, and equipping enforces one item
// per slot group within a single transaction.
type ShopService struct {
	db       *gorm.DB
	shopRepo repository.ShopRepository
	userRepo repository.UserRepository
	rankRepo repository.RankRepository
}

// NewShopService creates a shop service.
func NewShopService(db *gorm.DB, shopRepo repository.ShopRepository, userRepo repository.UserRepository, rankRepo repository.RankRepository) *ShopService {
	return &ShopService{db: db, shopRepo: shopRepo, userRepo: userRepo, rankRepo: rankRepo}
}

// Catalog lists all shop items.
func (s *ShopService) Catalog(ctx context.Context) ([]models.ShopItem, error) {
	return s.shopRepo.ListItems(ctx)
}

// Inventory lists the user's inventory rows.
func (s *ShopService) Inventory(ctx context.Context, userID uint) ([]models.InventoryItem, error) {
	return s.shopRepo.UserInventory(ctx, userID)
}

// Unlock creates an inventory row for a rank-gated item. A failed rank check
// leaves no partial inventory row behind.
func (s *ShopService) Unlock(ctx context.Context, userID, itemID uint) (*models.InventoryItem, error) {
	item, err := s.shopRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if item.RequiredRankID != nil {
		required, err := s.rankRepo.GetByID(ctx, *item.RequiredRankID)
		if err != nil {
			return nil, err
		}
		ranks, err := s.rankRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		current := models.CurrentRank(ranks, user.XP)
		if !models.Outranks(current, required) {
			return nil, models.NewInsufficientResourcesError("rank " + required.Name + " required to unlock this item")
		}
	}

	entry, err := s.shopRepo.GetInventoryEntry(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		if entry.IsUnlocked {
			return nil, models.NewConflictError("item is already unlocked")
		}
		entry.IsUnlocked = true
		if err := s.db.WithContext(ctx).Model(entry).Update("is_unlocked", true).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		return entry, nil
	}

	entry = &models.InventoryItem{
		UserID:     userID,
		ItemID:     itemID,
		IsUnlocked: true,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	entry.Item = *item
	return entry, nil
}

// Purchase deducts the item's price from the user's gold and marks the
// inventory row purchased, creating the row (unlocked and purchased) when
// the user has none yet. The gold check and the deduction happen with the
// user row locked.
func (s *ShopService) Purchase(ctx context.Context, userID, itemID uint) (*models.InventoryItem, error) {
	var out *models.InventoryItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.ShopItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("ShopItem", itemID)
			}
			return models.NewInternalError(err)
		}

		var entry models.InventoryItem
		err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&entry).Error
		exists := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewInternalError(err)
		}
		if exists && entry.IsPurchased {
			return models.NewConflictError("item is already purchased")
		}

		var user models.User
		if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
			return models.NewInternalError(err)
		}
		if user.Gold < item.Price {
			return models.NewInsufficientResourcesError("not enough gold")
		}

		if err := tx.Model(&user).Update("gold", user.Gold-item.Price).Error; err != nil {
			return models.NewInternalError(err)
		}
		if exists {
			if err := tx.Model(&entry).Update("is_purchased", true).Error; err != nil {
				return models.NewInternalError(err)
			}
			entry.IsPurchased = true
		} else {
			entry = models.InventoryItem{
				UserID:      userID,
				ItemID:      itemID,
				IsUnlocked:  true,
				IsPurchased: true,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return models.NewInternalError(err)
			}
		}
		entry.Item = item
		out = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateUser(ctx, userID)
	return out, nil
}

// Equip equips an owned inventory item, unequipping whatever currently
// occupies the same slot group in the same transaction. Hair and headwear
// share a slot; the other types are exclusive within their own type only.
func (s *ShopService) Equip(ctx context.Context, userID, inventoryID uint) (*models.InventoryItem, error) {
	var out *models.InventoryItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.InventoryItem
		err := tx.Preload("Item").
			Where("id = ? AND user_id = ?", inventoryID, userID).
			First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("InventoryItem", inventoryID)
		}
		if err != nil {
			return models.NewInternalError(err)
		}
		if !entry.Owned() {
			return models.NewInvalidStateError("item must be unlocked and purchased before equipping")
		}
		if entry.IsEquipped {
			out = &entry
			return nil
		}

		group := entry.Item.Type.SlotGroup()
		types := make([]string, len(group))
		for i, t := range group {
			types[i] = string(t)
		}

		if err := tx.Model(&models.InventoryItem{}).
			Where("user_id = ? AND is_equipped = ?", userID, true).
			Where("item_id IN (?)", tx.Model(&models.ShopItem{}).Select("id").Where("type IN ?", types)).
			Update("is_equipped", false).Error; err != nil {
			return models.NewInternalError(err)
		}

		if err := tx.Model(&entry).Update("is_equipped", true).Error; err != nil {
			return models.NewInternalError(err)
		}
		entry.IsEquipped = true
		out = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.EquipOperations.WithLabelValues(string(out.Item.Type)).Inc()
	return out, nil
}

// Unequip clears the equipped flag on an owned inventory item.
func (s *ShopService) Unequip(ctx context.Context, userID, inventoryID uint) (*models.InventoryItem, error) {
	entry, err := s.shopRepo.GetInventoryByID(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, models.NewNotFoundError("InventoryItem", inventoryID)
	}
	if !entry.IsEquipped {
		return nil, models.NewInvalidStateError("item is not equipped")
	}
	if err := s.db.WithContext(ctx).Model(entry).Update("is_equipped", false).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	entry.IsEquipped = false
	return entry, nil
}

// GrantDefaults gives a new user every default shop item, already unlocked,
// purchased, and equipped. The seed data holds one default per slot group,
// so equipping them all does not violate slot exclusivity.
func (s *ShopService) GrantDefaults(ctx context.Context, tx *gorm.DB, userID uint) error {
	var defaults []models.ShopItem
	if err := tx.Where("is_default = ?", true).Find(&defaults).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, item := range defaults {
		entry := models.InventoryItem{
			UserID:      userID,
			ItemID:      item.ID,
			IsUnlocked:  true,
			IsPurchased: true,
			IsEquipped:  true,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

// Character assembles the avatar view for a user.
func (s *ShopService) Character(ctx context.Context, userID uint) (*CharacterView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ranks, err := s.rankRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	equipped, err := s.shopRepo.EquippedItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CharacterView{
		User:     user,
		Rank:     models.CurrentRank(ranks, user.XP),
		Equipped: equipped,
	}, nil
}
