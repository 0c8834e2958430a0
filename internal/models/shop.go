package models

import "time"

// ItemType is the equip-slot group of a cosmetic shop item.
type ItemType string

const (
	ItemTypeHair     ItemType = "hair"
	ItemTypeHeadwear ItemType = "headwear"
	ItemTypeTop      ItemType = "top"
	ItemTypeBottom   ItemType = "bottom"
	ItemTypeBoots    ItemType = "boots"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeHair, ItemTypeHeadwear, ItemTypeTop, ItemTypeBottom, ItemTypeBoots:
		return true
	}
	return false
}

// SlotGroup returns all item types in t's equip-slot group. Hair and headwear
// form one merged group; every other type is its own group.
func (t ItemType) SlotGroup() []ItemType {
	if t == ItemTypeHair || t == ItemTypeHeadwear {
		return []ItemType{ItemTypeHair, ItemTypeHeadwear}
	}
	return []ItemType{t}
}

// ShopItem is a purchasable or unlockable cosmetic. Items with IsDefault are
// granted to every new user already unlocked, purchased, and equipped.
type ShopItem struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Type              ItemType  `gorm:"type:varchar(20);not null" json:"type"`
	Name              string    `gorm:"not null" json:"name"`
	Description       string    `gorm:"type:text" json:"description"`
	RequiredRankID    *uint     `json:"required_rank_id,omitempty"`
	RequiredRank      *Rank     `gorm:"foreignKey:RequiredRankID" json:"required_rank,omitempty"`
	Price             int64     `gorm:"not null;default:0" json:"price"`
	ImagePreviewURL   string    `json:"image_preview_url"`
	ImageCharacterURL string    `json:"image_character_url"`
	IsDefault         bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ShopItem) TableName() string {
	return "shop_items"
}

// InventoryItem associates a user with a shop item. The three booleans are
// independent gates: unlocking is rank-gated, purchasing is gold-gated, and
// equipping is slot-exclusivity-gated. Rows are never implicitly deleted.
type InventoryItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_inventory_user_item" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	ItemID      uint      `gorm:"not null;uniqueIndex:idx_inventory_user_item" json:"item_id"`
	Item        ShopItem  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	IsUnlocked  bool      `gorm:"not null;default:false" json:"is_unlocked"`
	IsPurchased bool      `gorm:"not null;default:false" json:"is_purchased"`
	IsEquipped  bool      `gorm:"not null;default:false" json:"is_equipped"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// Owned reports whether the item can be equipped at all.
func (i *InventoryItem) Owned() bool {
	return i.IsUnlocked && i.IsPurchased
}
