package service

import (
	"context"
	"errors"

	"taskquest/internal/models"
	"taskquest/internal/repository"

	"gorm.io/gorm"
)

// InviteResult summarizes a batch invitation.
type InviteResult struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
}

// CollabService manages task collaboration: inviting friends, responding to
// invitations, and removing collaborators. Invitations are friend-gated; a
// batch invite is atomic and rolls back entirely when any invitee fails a
// check.
type CollabService struct {
	db         *gorm.DB
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	friendRepo repository.FriendRepository
}

// NewCollabService creates a collaboration service.
func NewCollabService(db *gorm.DB, taskRepo repository.TaskRepository, userRepo repository.UserRepository, friendRepo repository.FriendRepository) *CollabService {
	return &CollabService{db: db, taskRepo: taskRepo, userRepo: userRepo, friendRepo: friendRepo}
}

// Invite adds the given users as pending collaborators on the task. Every
// invitee must exist and be a friend of the owner; the first failing invitee
// aborts the whole batch. Users already invited are counted, not duplicated.
func (s *CollabService) Invite(ctx context.Context, ownerID, taskID uint, userIDs []uint) (*InviteResult, error) {
	if len(userIDs) == 0 {
		return nil, models.NewValidationError("no users to invite")
	}

	result := &InviteResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}
		if task.UserID != ownerID {
			return models.NewForbiddenError("only the task owner can invite collaborators")
		}
		if task.IsCompleted || task.RewardsGrantedAt != nil {
			return models.NewInvalidStateError("cannot invite collaborators to a completed task")
		}

		existing := make(map[uint]bool, len(task.Collaborators))
		for _, c := range task.Collaborators {
			existing[c.UserID] = true
		}

		for _, inviteeID := range userIDs {
			if inviteeID == ownerID {
				return models.NewValidationError("you cannot invite yourself")
			}
			var invitee models.User
			if err := tx.First(&invitee, inviteeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewNotFoundError("User", inviteeID)
				}
				return models.NewInternalError(err)
			}
			if existing[inviteeID] {
				result.Existing++
				continue
			}

			u1, u2 := models.CanonicalPair(ownerID, inviteeID)
			var friendship models.Friendship
			err := tx.Where("user1_id = ? AND user2_id = ?", u1, u2).First(&friendship).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewPreconditionFailedError("you can only invite friends", inviteeID)
			}
			if err != nil {
				return models.NewInternalError(err)
			}

			collab := models.TaskCollaborator{
				TaskID:      task.ID,
				UserID:      inviteeID,
				InvitedByID: ownerID,
			}
			if err := tx.Create(&collab).Error; err != nil {
				return models.NewInternalError(err)
			}
			existing[inviteeID] = true
			result.Created++
		}

		task.CollaborationStatus = models.CollaborationPending
		if err := tx.Model(task).Update("collaboration_status", models.CollaborationPending).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Respond accepts or rejects an invitation. Only the invited user may
// respond. Accepting when no pending invitations remain moves the task's
// collaboration status to accepted; rejecting removes the collaborator row
// and marks the status rejected.
func (s *CollabService) Respond(ctx context.Context, userID, invitationID uint, accept bool) (*models.TaskCollaborator, error) {
	var out *models.TaskCollaborator

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var collab models.TaskCollaborator
		if err := lockForUpdate(tx).First(&collab, invitationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Invitation", invitationID)
			}
			return models.NewInternalError(err)
		}
		if collab.UserID != userID {
			return models.NewForbiddenError("this invitation is not addressed to you")
		}
		if collab.Accepted {
			return models.NewInvalidStateError("invitation already accepted")
		}

		task, err := lockTask(tx, collab.TaskID)
		if err != nil {
			return err
		}

		if !accept {
			if err := tx.Delete(&collab).Error; err != nil {
				return models.NewInternalError(err)
			}
			// A column-level update here: saving the whole task aggregate
			// would upsert its loaded Collaborators and resurrect the row
			// just deleted.
			task.CollaborationStatus = models.CollaborationRejected
			if err := tx.Model(task).Update("collaboration_status", models.CollaborationRejected).Error; err != nil {
				return models.NewInternalError(err)
			}
			out = &collab
			return nil
		}

		collab.Accepted = true
		if err := tx.Model(&collab).Update("accepted", true).Error; err != nil {
			return models.NewInternalError(err)
		}

		var pending int64
		if err := tx.Model(&models.TaskCollaborator{}).
			Where("task_id = ? AND accepted = ?", task.ID, false).
			Count(&pending).Error; err != nil {
			return models.NewInternalError(err)
		}
		if pending == 0 {
			task.CollaborationStatus = models.CollaborationAccepted
			if err := tx.Model(task).Update("collaboration_status", models.CollaborationAccepted).Error; err != nil {
				return models.NewInternalError(err)
			}
		}
		out = &collab
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes a collaborator from a task. Only the owner may remove, and
// a collaborator's pending individual completion mark is discarded with the
// row.
func (s *CollabService) Remove(ctx context.Context, ownerID, taskID, collaboratorID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}
		if task.UserID != ownerID {
			return models.NewForbiddenError("only the task owner can remove collaborators")
		}

		var collab models.TaskCollaborator
		err = tx.Where("task_id = ? AND user_id = ?", taskID, collaboratorID).First(&collab).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Collaborator", collaboratorID)
		}
		if err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&collab).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// Invitations lists the user's pending invitations.
func (s *CollabService) Invitations(ctx context.Context, userID uint) ([]models.TaskCollaborator, error) {
	return s.taskRepo.PendingInvitations(ctx, userID)
}

// Collaborations lists tasks the user collaborates on.
func (s *CollabService) Collaborations(ctx context.Context, userID uint, limit, offset int) ([]models.Task, error) {
	return s.taskRepo.ListCollaborations(ctx, userID, limit, offset)
}
