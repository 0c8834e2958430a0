// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a player in the TaskQuest application. XP and Gold are the
// two reward counters; both are clamped at zero by every mutating operation.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	AvatarURL string         `json:"avatar_url"`
	XP        int64          `gorm:"not null;default:0" json:"xp"`
	Gold      int64          `gorm:"not null;default:0" json:"gold"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Tasks     []Task          `gorm:"foreignKey:UserID" json:"tasks,omitempty"`
	Inventory []InventoryItem `gorm:"foreignKey:UserID" json:"inventory,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
