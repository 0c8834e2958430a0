// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"taskquest/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds demo entities and persists them to the database. It is a
// thin helper used by the seeder and by tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for demo data
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUsers creates count demo users with default cosmetics granted. The
// first few users are fixed accounts so developers can always log in with
// known credentials (password123).
func (f *Factory) CreateUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	if count >= 2 {
		for _, name := range []string{"demo", "test"} {
			user := models.User{
				Username:  name,
				Email:     fmt.Sprintf("%s@example.com", name),
				Password:  string(hashedPassword),
				AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name),
			}
			if err := f.createUserWithDefaults(&user); err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), i))
		user := models.User{
			Username:  username,
			Email:     fmt.Sprintf("%s@example.com", username),
			Password:  string(hashedPassword),
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
			XP:        int64(f.r.Intn(2000)),
			Gold:      int64(f.r.Intn(500)),
		}
		if err := f.createUserWithDefaults(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (f *Factory) createUserWithDefaults(user *models.User) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		var defaults []models.ShopItem
		if err := tx.Where("is_default = ?", true).Find(&defaults).Error; err != nil {
			return err
		}
		for _, item := range defaults {
			entry := models.InventoryItem{
				UserID:      user.ID,
				ItemID:      item.ID,
				IsUnlocked:  true,
				IsPurchased: true,
				IsEquipped:  true,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateFriendships links each user with a handful of others so invitations
// have valid targets.
func (f *Factory) CreateFriendships(users []models.User) error {
	for i := range users {
		links := 2 + f.r.Intn(3)
		for j := 0; j < links; j++ {
			other := f.r.Intn(len(users))
			if other == i {
				continue
			}
			u1, u2 := models.CanonicalPair(users[i].ID, users[other].ID)
			friendship := models.Friendship{User1ID: u1, User2ID: u2}
			if err := f.db.Where("user1_id = ? AND user2_id = ?", u1, u2).
				FirstOrCreate(&friendship).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateTasks spreads count demo tasks across the users, some completed and
// some shared with friends.
func (f *Factory) CreateTasks(users []models.User, count int) ([]models.Task, error) {
	if len(users) == 0 {
		return nil, nil
	}

	tasks := make([]models.Task, 0, count)
	for i := 0; i < count; i++ {
		owner := users[f.r.Intn(len(users))]
		task := models.Task{
			UserID:         owner.ID,
			Title:          gofakeit.Sentence(4),
			Description:    gofakeit.Paragraph(1, 2, 6, "\n"),
			Difficulty:     models.Difficulty(1 + f.r.Intn(5)),
			Kind:           models.TaskKind(1 + f.r.Intn(3)),
			BaseRewardXP:   5,
			BaseRewardGold: 10,
			CollaborationType: models.CollaborationAnyCompletes,
		}
		if f.r.Intn(4) == 0 {
			task.CollaborationType = models.CollaborationAllMustComplete
		}
		if f.r.Intn(3) == 0 {
			due := time.Now().Add(time.Duration(1+f.r.Intn(14)) * 24 * time.Hour)
			task.DueDate = &due
		}

		if err := f.db.Create(&task).Error; err != nil {
			return nil, err
		}

		// Invite an accepted collaborator on some shared tasks.
		if task.CollaborationType == models.CollaborationAllMustComplete {
			var friends []models.User
			if err := f.db.
				Joins("JOIN friendships ON (friendships.user1_id = users.id AND friendships.user2_id = ?) OR (friendships.user2_id = users.id AND friendships.user1_id = ?)", owner.ID, owner.ID).
				Limit(1).Find(&friends).Error; err == nil && len(friends) > 0 {
				collab := models.TaskCollaborator{
					TaskID:      task.ID,
					UserID:      friends[0].ID,
					InvitedByID: owner.ID,
					Accepted:    true,
				}
				_ = f.db.Create(&collab).Error
			}
		}

		tasks = append(tasks, task)
	}
	return tasks, nil
}
