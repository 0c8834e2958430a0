package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskquest/internal/cache"
	"taskquest/internal/models"
	"taskquest/internal/observability"
	"taskquest/internal/repository"
	"taskquest/internal/validation"

	"gorm.io/gorm"
)

// TaskInput carries the client-settable fields of a task. Pointer fields
// distinguish "absent" from "zero" on updates.
type TaskInput struct {
	Title             string             `json:"title"`
	Description       *string            `json:"description"`
	DueDate           *time.Time         `json:"due_date"`
	Difficulty        *models.Difficulty `json:"difficulty"`
	Kind              *models.TaskKind   `json:"kind"`
	BaseRewardXP      *int64             `json:"base_reward_xp"`
	BaseRewardGold    *int64             `json:"base_reward_gold"`
	CollaborationType *models.CollaborationType `json:"collaboration_type"`
}

// TaskService owns the task lifecycle: creation, edits, the complete and
// uncomplete transitions with their reward side effects, and deletion with
// the abort penalty. Transitions run inside a single transaction with the
// task row locked so concurrent completions cannot double-pay.
type TaskService struct {
	db       *gorm.DB
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a task service.
func NewTaskService(db *gorm.DB, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{db: db, taskRepo: taskRepo, userRepo: userRepo}
}

// Create validates the input and stores a new task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*models.Task, error) {
	if err := validation.ValidateTaskTitle(input.Title); err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:         userID,
		Title:          input.Title,
		DueDate:        input.DueDate,
		Difficulty:     models.DifficultyMedium,
		Kind:           models.TaskKindPermanent,
		BaseRewardXP:   5,
		BaseRewardGold: 10,
		CollaborationType: models.CollaborationAnyCompletes,
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Difficulty != nil {
		if !input.Difficulty.Valid() {
			return nil, models.NewValidationError(fmt.Sprintf("invalid difficulty %d, must be 1-5", *input.Difficulty))
		}
		task.Difficulty = *input.Difficulty
	}
	if input.Kind != nil {
		if *input.Kind < models.TaskKindDaily || *input.Kind > models.TaskKindPermanent {
			return nil, models.NewValidationError("invalid task kind")
		}
		task.Kind = *input.Kind
	}
	if input.BaseRewardXP != nil {
		if *input.BaseRewardXP < 0 {
			return nil, models.NewValidationError("base XP reward cannot be negative")
		}
		task.BaseRewardXP = *input.BaseRewardXP
	}
	if input.BaseRewardGold != nil {
		if *input.BaseRewardGold < 0 {
			return nil, models.NewValidationError("base gold reward cannot be negative")
		}
		task.BaseRewardGold = *input.BaseRewardGold
	}
	if input.CollaborationType != nil {
		if *input.CollaborationType != models.CollaborationAnyCompletes && *input.CollaborationType != models.CollaborationAllMustComplete {
			return nil, models.NewValidationError("invalid collaboration type")
		}
		task.CollaborationType = *input.CollaborationType
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies the provided fields to a task. Only the owner may edit.
// Reward fields are recomputed on save, so changing difficulty changes the
// payout of a future completion.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, input TaskInput) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, models.NewForbiddenError("only the task owner can edit it")
	}

	if input.Title != "" {
		if err := validation.ValidateTaskTitle(input.Title); err != nil {
			return nil, err
		}
		task.Title = input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Difficulty != nil {
		if !input.Difficulty.Valid() {
			return nil, models.NewValidationError(fmt.Sprintf("invalid difficulty %d, must be 1-5", *input.Difficulty))
		}
		task.Difficulty = *input.Difficulty
	}
	if input.Kind != nil {
		task.Kind = *input.Kind
	}
	if input.BaseRewardXP != nil {
		if *input.BaseRewardXP < 0 {
			return nil, models.NewValidationError("base XP reward cannot be negative")
		}
		task.BaseRewardXP = *input.BaseRewardXP
	}
	if input.BaseRewardGold != nil {
		if *input.BaseRewardGold < 0 {
			return nil, models.NewValidationError("base gold reward cannot be negative")
		}
		task.BaseRewardGold = *input.BaseRewardGold
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns a task if the actor participates in it.
func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !s.isParticipant(task, userID) {
		return nil, models.NewForbiddenError("you do not participate in this task")
	}
	return task, nil
}

// List returns the tasks the user owns or collaborates on.
func (s *TaskService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Task, error) {
	return s.taskRepo.ListForUser(ctx, userID, limit, offset)
}

// Complete marks the task complete for the acting user and grants rewards.
//
// For any-completes tasks the first completion finishes the task and every
// participant (owner plus accepted collaborators) is rewarded at once. For
// all-must-complete tasks the actor's individual mark is recorded; rewards
// fan out only when the owner and every accepted collaborator have all
// completed. RewardsGrantedAt guarantees the fan-out happens exactly once
// even when the last two participants race.
func (s *TaskService) Complete(ctx context.Context, actorID, taskID uint) (*models.Task, error) {
	var out *models.Task
	var rewarded []uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}
		collab, err := s.acceptedCollaborator(task, actorID)
		if err != nil {
			return err
		}
		isOwner := task.UserID == actorID
		if !isOwner && collab == nil {
			return models.NewForbiddenError("you do not participate in this task")
		}

		switch task.CollaborationType {
		case models.CollaborationAllMustComplete:
			if task.RewardsGrantedAt != nil {
				return models.NewInvalidStateError("task is already completed")
			}
			if isOwner {
				if task.IsCompleted {
					return models.NewInvalidStateError("you have already completed this task")
				}
				task.IsCompleted = true
			} else {
				if collab.Completed {
					return models.NewInvalidStateError("you have already completed this task")
				}
				collab.Completed = true
				if err := tx.Model(collab).Update("completed", true).Error; err != nil {
					return models.NewInternalError(err)
				}
			}
			if consensusReached(task) {
				now := time.Now().UTC()
				task.RewardsGrantedAt = &now
				for _, id := range participantIDs(task) {
					if err := applyReward(tx, id, task.RewardXP, task.RewardGold, rewardKindGrant); err != nil {
						return err
					}
					rewarded = append(rewarded, id)
				}
				observability.ConsensusFanOuts.Inc()
				observability.TasksCompleted.WithLabelValues("all_must_complete").Inc()
			}

		default: // any-completes
			if task.IsCompleted {
				return models.NewInvalidStateError("task is already completed")
			}
			task.IsCompleted = true
			now := time.Now().UTC()
			task.RewardsGrantedAt = &now
			for _, id := range participantIDs(task) {
				if err := applyReward(tx, id, task.RewardXP, task.RewardGold, rewardKindGrant); err != nil {
					return err
				}
				rewarded = append(rewarded, id)
			}
			observability.TasksCompleted.WithLabelValues("any_completes").Inc()
		}

		// Column-level update: a Save on the aggregate would also upsert the
		// loaded Collaborators association.
		if err := tx.Model(task).Updates(map[string]any{
			"is_completed":       task.IsCompleted,
			"rewards_granted_at": task.RewardsGrantedAt,
		}).Error; err != nil {
			return models.NewInternalError(err)
		}
		out = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range rewarded {
		cache.InvalidateUser(ctx, id)
	}
	return out, nil
}

// Uncomplete reverses a completion. Only the acting user's own reward is
// taken back; other participants keep theirs. The task returns to the
// active state and a later completion pays the full fan-out again. On an
// all-must-complete task where rewards never fanned out, backing out only
// clears the actor's completion mark and costs nothing.
func (s *TaskService) Uncomplete(ctx context.Context, actorID, taskID uint) (*models.Task, error) {
	var out *models.Task
	var reversed bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}
		collab, err := s.acceptedCollaborator(task, actorID)
		if err != nil {
			return err
		}
		isOwner := task.UserID == actorID
		if !isOwner && collab == nil {
			return models.NewForbiddenError("you do not participate in this task")
		}
		if !task.IsCompleted {
			return models.NewInvalidStateError("task is not completed")
		}

		// Rewards are only reversed when they were actually granted. The
		// owner of an all-must-complete task can have marked it complete
		// without the consensus fan-out having fired.
		if task.RewardsGrantedAt != nil {
			if err := applyReward(tx, actorID, -task.RewardXP, -task.RewardGold, rewardKindReversal); err != nil {
				return err
			}
			reversed = true
		}

		task.IsCompleted = false
		task.RewardsGrantedAt = nil
		if collab != nil {
			if err := tx.Model(collab).Update("completed", false).Error; err != nil {
				return models.NewInternalError(err)
			}
		}
		// Column-level update: a Save on the aggregate would also upsert the
		// loaded Collaborators association.
		if err := tx.Model(task).Updates(map[string]any{
			"is_completed":       false,
			"rewards_granted_at": nil,
		}).Error; err != nil {
			return models.NewInternalError(err)
		}
		out = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reversed {
		cache.InvalidateUser(ctx, actorID)
	}
	return out, nil
}

// Delete removes a task. Deleting a task that was never completed is an
// abort and costs the owner twice the task's reward, clamped at zero like
// every ledger write. Collaborator rows go with the task.
func (s *TaskService) Delete(ctx context.Context, actorID, taskID uint) error {
	var penalized bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}
		if task.UserID != actorID {
			return models.NewForbiddenError("only the task owner can delete it")
		}

		if !task.IsCompleted {
			if err := applyReward(tx, actorID, -2*task.RewardXP, -2*task.RewardGold, rewardKindPenalty); err != nil {
				return err
			}
			penalized = true
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskCollaborator{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(task).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if penalized {
		cache.InvalidateUser(ctx, actorID)
	}
	return nil
}

func (s *TaskService) isParticipant(task *models.Task, userID uint) bool {
	if task.UserID == userID {
		return true
	}
	for _, c := range task.Collaborators {
		if c.UserID == userID && c.Accepted {
			return true
		}
	}
	return false
}

// acceptedCollaborator returns the actor's accepted collaborator row, or
// nil when the actor is not an accepted collaborator.
func (s *TaskService) acceptedCollaborator(task *models.Task, userID uint) (*models.TaskCollaborator, error) {
	for i := range task.Collaborators {
		c := &task.Collaborators[i]
		if c.UserID == userID && c.Accepted {
			return c, nil
		}
	}
	return nil, nil
}

// consensusReached reports whether the owner and every accepted collaborator
// have completed an all-must-complete task. Pending and rejected invitations
// do not block consensus.
func consensusReached(task *models.Task) bool {
	if !task.IsCompleted {
		return false
	}
	for _, c := range task.Collaborators {
		if c.Accepted && !c.Completed {
			return false
		}
	}
	return true
}

// participantIDs returns the owner plus every accepted collaborator.
func participantIDs(task *models.Task) []uint {
	ids := []uint{task.UserID}
	for _, c := range task.Collaborators {
		if c.Accepted {
			ids = append(ids, c.UserID)
		}
	}
	return ids
}

// lockTask loads the task with its collaborator rows, holding a row lock on
// the task for the rest of the transaction.
func lockTask(tx *gorm.DB, taskID uint) (*models.Task, error) {
	var task models.Task
	err := lockForUpdate(tx).First(&task, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Task", taskID)
		}
		return nil, models.NewInternalError(err)
	}
	if err := tx.Where("task_id = ?", taskID).Find(&task.Collaborators).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &task, nil
}
