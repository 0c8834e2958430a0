package models

import (
	"time"

	"gorm.io/gorm"
)

// Difficulty is the five-point ordinal difficulty scale of a task.
type Difficulty int

const (
	DifficultyVeryEasy Difficulty = 1
	DifficultyEasy     Difficulty = 2
	DifficultyMedium   Difficulty = 3
	DifficultyHard     Difficulty = 4
	DifficultyVeryHard Difficulty = 5
)

// Valid reports whether d is one of the five defined difficulty levels.
func (d Difficulty) Valid() bool {
	return d >= DifficultyVeryEasy && d <= DifficultyVeryHard
}

// RewardMultiplier returns the reward multiplier for the difficulty level.
// The table is fixed: 0.5, 0.75, 1.0, 1.5, 2.0 for levels 1 through 5.
func (d Difficulty) RewardMultiplier() float64 {
	switch d {
	case DifficultyVeryEasy:
		return 0.5
	case DifficultyEasy:
		return 0.75
	case DifficultyMedium:
		return 1.0
	case DifficultyHard:
		return 1.5
	case DifficultyVeryHard:
		return 2.0
	default:
		return 1.0
	}
}

// TaskKind categorizes how a task recurs.
type TaskKind int

const (
	TaskKindDaily     TaskKind = 1
	TaskKindWeekly    TaskKind = 2
	TaskKindPermanent TaskKind = 3
)

// CollaborationType decides how a shared task reaches completion.
type CollaborationType int

const (
	// CollaborationAnyCompletes completes the task as soon as any participant
	// completes it; every participant is rewarded.
	CollaborationAnyCompletes CollaborationType = 1
	// CollaborationAllMustComplete requires every accepted collaborator and the
	// owner to complete before the task is done and rewards fan out.
	CollaborationAllMustComplete CollaborationType = 2
)

// CollaborationStatus tracks the invitation state of a shared task.
type CollaborationStatus int

const (
	CollaborationPending  CollaborationStatus = 1
	CollaborationAccepted CollaborationStatus = 2
	CollaborationRejected CollaborationStatus = 3
)

// Task is a unit of work owned by a single user. RewardXP and RewardGold are
// derived from the base rewards and the difficulty multiplier; they are
// recomputed on every save, so editing difficulty after creation changes the
// reward.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Difficulty  Difficulty `gorm:"not null;default:3" json:"difficulty"`
	Kind        TaskKind   `gorm:"not null;default:3" json:"kind"`

	BaseRewardXP   int64 `gorm:"not null;default:5" json:"base_reward_xp"`
	BaseRewardGold int64 `gorm:"not null;default:10" json:"base_reward_gold"`
	// Derived fields, recomputed by BeforeSave.
	RewardXP   int64 `gorm:"not null" json:"reward_xp"`
	RewardGold int64 `gorm:"not null" json:"reward_gold"`

	IsCompleted         bool                `gorm:"not null;default:false" json:"is_completed"`
	CollaborationType   CollaborationType   `gorm:"not null;default:1" json:"collaboration_type"`
	CollaborationStatus CollaborationStatus `gorm:"not null;default:1" json:"collaboration_status"`
	// RewardsGrantedAt marks that the completion fan-out has been applied.
	// It guards against double-applying rewards when two participants finish
	// an all-must-complete task concurrently.
	RewardsGrantedAt *time.Time `json:"rewards_granted_at,omitempty"`

	Collaborators []TaskCollaborator `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"collaborators,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// BeforeSave recomputes the derived reward fields from the base rewards and
// the difficulty multiplier, rounding down.
func (t *Task) BeforeSave(_ *gorm.DB) error {
	mult := t.Difficulty.RewardMultiplier()
	t.RewardXP = int64(float64(t.BaseRewardXP) * mult)
	t.RewardGold = int64(float64(t.BaseRewardGold) * mult)
	return nil
}

// TaskCollaborator associates a task with an invited user. Completed is only
// meaningful for all-must-complete tasks, where it records the collaborator's
// individual completion mark.
type TaskCollaborator struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TaskID      uint      `gorm:"not null;uniqueIndex:idx_task_collaborator" json:"task_id"`
	Task        Task      `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_task_collaborator" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	InvitedByID uint      `gorm:"not null" json:"invited_by_id"`
	InvitedBy   User      `gorm:"foreignKey:InvitedByID" json:"invited_by,omitempty"`
	Accepted    bool      `gorm:"not null;default:false" json:"accepted"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (TaskCollaborator) TableName() string {
	return "task_collaborators"
}
