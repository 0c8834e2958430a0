package service

import (
	"context"
	"testing"

	"taskquest/internal/models"
	"taskquest/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCollabService(db *gorm.DB) *CollabService {
	return NewCollabService(db,
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
		repository.NewFriendRepository(db))
}

func befriend(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()
	u1, u2 := models.CanonicalPair(a, b)
	require.NoError(t, db.Create(&models.Friendship{User1ID: u1, User2ID: u2}).Error)
}

func TestCollabService_InviteFriends(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	owner := createUser(t, db, "owner", 0, 0)
	friend := createUser(t, db, "friend", 0, 0)
	befriend(t, db, owner.ID, friend.ID)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAllMustComplete)

	result, err := svc.Invite(context.Background(), owner.ID, task.ID, []uint{friend.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Existing)

	var collab models.TaskCollaborator
	require.NoError(t, db.Where("task_id = ? AND user_id = ?", task.ID, friend.ID).First(&collab).Error)
	assert.False(t, collab.Accepted)
	assert.Equal(t, owner.ID, collab.InvitedByID)

	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.CollaborationPending, reloaded.CollaborationStatus)
}

func TestCollabService_InviteNonFriendRollsBackBatch(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	owner := createUser(t, db, "owner", 0, 0)
	friend := createUser(t, db, "friend", 0, 0)
	stranger := createUser(t, db, "stranger", 0, 0)
	befriend(t, db, owner.ID, friend.ID)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAllMustComplete)

	_, err := svc.Invite(context.Background(), owner.ID, task.ID, []uint{friend.ID, stranger.ID})
	require.Error(t, err)

	appErr := err.(*models.AppError)
	assert.Equal(t, models.CodePreconditionFailed, appErr.Code)
	assert.Equal(t, stranger.ID, appErr.UserID)

	// The whole batch rolled back: the friend's row must not exist either.
	var count int64
	require.NoError(t, db.Model(&models.TaskCollaborator{}).Where("task_id = ?", task.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCollabService_InviteSelf(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	owner := createUser(t, db, "owner", 0, 0)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAnyCompletes)

	_, err := svc.Invite(context.Background(), owner.ID, task.ID, []uint{owner.ID})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, err.(*models.AppError).Code)
}

func TestCollabService_InviteCountsExisting(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	owner := createUser(t, db, "owner", 0, 0)
	friend := createUser(t, db, "friend", 0, 0)
	befriend(t, db, owner.ID, friend.ID)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAllMustComplete)

	_, err := svc.Invite(context.Background(), owner.ID, task.ID, []uint{friend.ID})
	require.NoError(t, err)

	// A batch of already-invited users still marks the task pending, even
	// when nothing new was created.
	require.NoError(t, db.Model(&models.Task{}).Where("id = ?", task.ID).
		Update("collaboration_status", models.CollaborationRejected).Error)

	result, err := svc.Invite(context.Background(), owner.ID, task.ID, []uint{friend.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Existing)

	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.CollaborationPending, reloaded.CollaborationStatus)
}

func TestCollabService_InviteByNonOwner(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	owner := createUser(t, db, "owner", 0, 0)
	friend := createUser(t, db, "friend", 0, 0)
	befriend(t, db, owner.ID, friend.ID)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAnyCompletes)

	_, err := svc.Invite(context.Background(), friend.ID, task.ID, []uint{owner.ID})
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, err.(*models.AppError).Code)
}

func TestCollabService_InviteToCompletedTask(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	taskSvc := newTaskService(db)
	owner := createUser(t, db, "owner", 0, 0)
	friend := createUser(t, db, "friend", 0, 0)
	befriend(t, db, owner.ID, friend.ID)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAnyCompletes)

	_, err := taskSvc.Complete(context.Background(), owner.ID, task.ID)
	require.NoError(t, err)

	_, err = svc.Invite(context.Background(), owner.ID, task.ID, []uint{friend.ID})
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidState, err.(*models.AppError).Code)
}

func TestCollabService_RespondAccept(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	owner := createUser(t, db, "owner", 0, 0)
	friend := createUser(t, db, "friend", 0, 0)
	befriend(t, db, owner.ID, friend.ID)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAllMustComplete)

	_, err := svc.Invite(context.Background(), owner.ID, task.ID, []uint{friend.ID})
	require.NoError(t, err)
	var invitation models.TaskCollaborator
	require.NoError(t, db.Where("task_id = ? AND user_id = ?", task.ID, friend.ID).First(&invitation).Error)

	accepted, err := svc.Respond(context.Background(), friend.ID, invitation.ID, true)
	require.NoError(t, err)
	assert.True(t, accepted.Accepted)

	// No pending invitations remain, so the task moves to accepted.
	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.CollaborationAccepted, reloaded.CollaborationStatus)
}

func TestCollabService_RespondReject(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	owner := createUser(t, db, "owner", 0, 0)
	friend := createUser(t, db, "friend", 0, 0)
	befriend(t, db, owner.ID, friend.ID)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAllMustComplete)

	_, err := svc.Invite(context.Background(), owner.ID, task.ID, []uint{friend.ID})
	require.NoError(t, err)
	var invitation models.TaskCollaborator
	require.NoError(t, db.Where("task_id = ? AND user_id = ?", task.ID, friend.ID).First(&invitation).Error)

	_, err = svc.Respond(context.Background(), friend.ID, invitation.ID, false)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.TaskCollaborator{}).Where("task_id = ?", task.ID).Count(&count).Error)
	assert.Zero(t, count)

	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.CollaborationRejected, reloaded.CollaborationStatus)
}

func TestCollabService_RespondWrongUser(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	owner := createUser(t, db, "owner", 0, 0)
	friend := createUser(t, db, "friend", 0, 0)
	other := createUser(t, db, "other", 0, 0)
	befriend(t, db, owner.ID, friend.ID)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAllMustComplete)

	_, err := svc.Invite(context.Background(), owner.ID, task.ID, []uint{friend.ID})
	require.NoError(t, err)
	var invitation models.TaskCollaborator
	require.NoError(t, db.Where("task_id = ?", task.ID).First(&invitation).Error)

	_, err = svc.Respond(context.Background(), other.ID, invitation.ID, true)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, err.(*models.AppError).Code)
}

func TestCollabService_Remove(t *testing.T) {
	db := setupDB(t)
	svc := newCollabService(db)
	owner := createUser(t, db, "owner", 0, 0)
	friend := createUser(t, db, "friend", 0, 0)
	task := createTask(t, db, owner.ID, models.DifficultyMedium, models.CollaborationAllMustComplete)
	addCollaborator(t, db, task.ID, friend.ID, owner.ID, true)

	// Only the owner may remove.
	err := svc.Remove(context.Background(), friend.ID, task.ID, friend.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, err.(*models.AppError).Code)

	require.NoError(t, svc.Remove(context.Background(), owner.ID, task.ID, friend.ID))

	var count int64
	require.NoError(t, db.Model(&models.TaskCollaborator{}).Where("task_id = ?", task.ID).Count(&count).Error)
	assert.Zero(t, count)
}
