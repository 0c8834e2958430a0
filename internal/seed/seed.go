// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"taskquest/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumTasks    int
	ShouldClean bool
}

// rankLadder is the reference rank ladder. Thresholds are cumulative XP.
var rankLadder = []models.Rank{
	{Name: "Novice", RequiredXP: 0},
	{Name: "Apprentice", RequiredXP: 100},
	{Name: "Adept", RequiredXP: 300},
	{Name: "Expert", RequiredXP: 700},
	{Name: "Legend", RequiredXP: 1500},
}

type catalogItem struct {
	item         models.ShopItem
	requiredRank string
}

// shopCatalog is the reference cosmetic catalog. Exactly one default exists
// per equip-slot group (hair and headwear share a group) so that granting
// the defaults to a new user never violates slot exclusivity.
var shopCatalog = []catalogItem{
	{item: models.ShopItem{Type: models.ItemTypeHair, Name: "Short Crop", IsDefault: true}},
	{item: models.ShopItem{Type: models.ItemTypeTop, Name: "Plain Tunic", IsDefault: true}},
	{item: models.ShopItem{Type: models.ItemTypeBottom, Name: "Linen Trousers", IsDefault: true}},
	{item: models.ShopItem{Type: models.ItemTypeBoots, Name: "Worn Boots", IsDefault: true}},

	{item: models.ShopItem{Type: models.ItemTypeHair, Name: "Wild Mane", Price: 25}},
	{item: models.ShopItem{Type: models.ItemTypeHeadwear, Name: "Traveler's Hood", Price: 40}},
	{item: models.ShopItem{Type: models.ItemTypeTop, Name: "Scholar's Robe", Price: 60}, requiredRank: "Apprentice"},
	{item: models.ShopItem{Type: models.ItemTypeBottom, Name: "Reinforced Greaves", Price: 80}, requiredRank: "Adept"},
	{item: models.ShopItem{Type: models.ItemTypeBoots, Name: "Swiftstep Boots", Price: 120}, requiredRank: "Adept"},
	{item: models.ShopItem{Type: models.ItemTypeHeadwear, Name: "Hero's Helm", Price: 200}, requiredRank: "Expert"},
	{item: models.ShopItem{Type: models.ItemTypeTop, Name: "Legend's Mantle", Price: 500}, requiredRank: "Legend"},
}

// SeedReferenceData ensures the rank ladder and the shop catalog exist.
// It is idempotent and safe to run on every startup.
func SeedReferenceData(db *gorm.DB) error {
	ranksByName := make(map[string]uint, len(rankLadder))
	for _, r := range rankLadder {
		rank := r
		if err := db.Where("name = ?", rank.Name).FirstOrCreate(&rank).Error; err != nil {
			return fmt.Errorf("failed to seed rank %q: %w", rank.Name, err)
		}
		ranksByName[rank.Name] = rank.ID
	}

	for _, entry := range shopCatalog {
		item := entry.item
		if entry.requiredRank != "" {
			rankID, ok := ranksByName[entry.requiredRank]
			if !ok {
				return fmt.Errorf("shop item %q references unknown rank %q", item.Name, entry.requiredRank)
			}
			item.RequiredRankID = &rankID
		}
		if err := db.Where("name = ?", item.Name).FirstOrCreate(&item).Error; err != nil {
			return fmt.Errorf("failed to seed shop item %q: %w", item.Name, err)
		}
	}

	return nil
}

// Seed populates the database with reference data plus demo users and tasks.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d tasks...", opts.NumUsers, opts.NumTasks)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := SeedReferenceData(db); err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}
	log.Println("✓ rank ladder and shop catalog ensured")

	f := NewFactory(db)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d demo users created", len(users))

	if err := f.CreateFriendships(users); err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Println("✓ demo friendship mesh created")

	tasks, err := f.CreateTasks(users, opts.NumTasks)
	if err != nil {
		return fmt.Errorf("failed to create tasks: %w", err)
	}
	log.Printf("✓ %d demo tasks created", len(tasks))

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE task_collaborators, tasks, inventory_items, friendships, friend_requests, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
