package repository

import (
	"context"
	"errors"

	"taskquest/internal/models"
	"taskquest/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskRepository defines persistence operations for tasks and their
// collaborator rows. State transitions (complete, uncomplete, delete) are
// owned by the task service, which runs them inside transactions; the
// repository covers the plain CRUD and listing surface.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Task, error)
	ListCollaborations(ctx context.Context, userID uint, limit, offset int) ([]models.Task, error)
	PendingInvitations(ctx context.Context, userID uint) ([]models.TaskCollaborator, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository returns a new TaskRepository implementation.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	defer observability.TrackQuery("insert", "tasks")()
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Collaborators").
		Preload("Collaborators.User").
		First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Task", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &task, nil
}

// Update persists the task's own columns. Associations are omitted: the task
// is loaded with its Collaborators, and saving them back would upsert rows
// that may have been deleted in the meantime.
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	defer observability.TrackQuery("update", "tasks")()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListForUser returns tasks the user owns or collaborates on (accepted only),
// newest first.
func (r *taskRepository) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Distinct("tasks.*").
		Joins("LEFT JOIN task_collaborators tc ON tc.task_id = tasks.id").
		Where("tasks.user_id = ? OR (tc.user_id = ? AND tc.accepted = ?)", userID, userID, true).
		Preload("Collaborators").
		Preload("Collaborators.User").
		Order("tasks.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

// ListCollaborations returns tasks where the user is an accepted collaborator.
func (r *taskRepository) ListCollaborations(ctx context.Context, userID uint, limit, offset int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN task_collaborators tc ON tc.task_id = tasks.id").
		Where("tc.user_id = ? AND tc.accepted = ?", userID, true).
		Preload("Collaborators").
		Order("tasks.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

// PendingInvitations returns collaborator rows the user has not yet accepted.
func (r *taskRepository) PendingInvitations(ctx context.Context, userID uint) ([]models.TaskCollaborator, error) {
	var invitations []models.TaskCollaborator
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND accepted = ?", userID, false).
		Preload("Task").
		Preload("InvitedBy").
		Find(&invitations).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return invitations, nil
}
