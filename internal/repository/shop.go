package repository

import (
	"context"
	"errors"

	"taskquest/internal/cache"
	"taskquest/internal/models"

	"gorm.io/gorm"
)

// ShopRepository provides access to the shop catalog and user inventories.
type ShopRepository interface {
	ListItems(ctx context.Context) ([]models.ShopItem, error)
	GetItem(ctx context.Context, id uint) (*models.ShopItem, error)
	DefaultItems(ctx context.Context) ([]models.ShopItem, error)
	GetInventoryEntry(ctx context.Context, userID, itemID uint) (*models.InventoryItem, error)
	GetInventoryByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	UserInventory(ctx context.Context, userID uint) ([]models.InventoryItem, error)
	EquippedItems(ctx context.Context, userID uint) ([]models.InventoryItem, error)
}

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository returns a new ShopRepository implementation.
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

// ListItems returns the full catalog, cached since items change only on seed.
func (r *shopRepository) ListItems(ctx context.Context) ([]models.ShopItem, error) {
	var items []models.ShopItem

	err := cache.Aside(ctx, cache.ShopCatalogKey(), &items, cache.ShopTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("RequiredRank").Order("id ASC").Find(&items).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shopRepository) GetItem(ctx context.Context, id uint) (*models.ShopItem, error) {
	var item models.ShopItem
	err := r.db.WithContext(ctx).Preload("RequiredRank").First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ShopItem", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *shopRepository) DefaultItems(ctx context.Context) ([]models.ShopItem, error) {
	var items []models.ShopItem
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *shopRepository) GetInventoryEntry(ctx context.Context, userID, itemID uint) (*models.InventoryItem, error) {
	var entry models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *shopRepository) GetInventoryByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var entry models.InventoryItem
	err := r.db.WithContext(ctx).Preload("Item").First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("InventoryItem", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *shopRepository) UserInventory(ctx context.Context, userID uint) ([]models.InventoryItem, error) {
	var entries []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Item").
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *shopRepository) EquippedItems(ctx context.Context, userID uint) ([]models.InventoryItem, error) {
	var entries []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_equipped = ?", userID, true).
		Preload("Item").
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
