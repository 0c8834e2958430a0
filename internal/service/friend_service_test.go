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

func newFriendService(db *gorm.DB) *FriendService {
	return NewFriendService(repository.NewFriendRepository(db), repository.NewUserRepository(db))
}

func TestFriendService_SendAcceptFlow(t *testing.T) {
	db := setupDB(t)
	svc := newFriendService(db)
	alice := createUser(t, db, "alice", 0, 0)
	bob := createUser(t, db, "bob", 0, 0)

	req, err := svc.SendRequest(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, req.FromUserID)
	assert.Equal(t, alice.ID, req.ToUserID)

	friendship, err := svc.Accept(context.Background(), alice.ID, req.ID)
	require.NoError(t, err)

	// The stored pair is canonical regardless of who sent the request.
	assert.Equal(t, alice.ID, friendship.User1ID)
	assert.Equal(t, bob.ID, friendship.User2ID)

	// The request row is consumed.
	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&count).Error)
	assert.Zero(t, count)

	// Friendship is symmetric.
	friends, err := svc.Friends(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)

	friends, err = svc.Friends(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, alice.ID, friends[0].ID)
}

func TestFriendService_SendRequestToSelf(t *testing.T) {
	db := setupDB(t)
	svc := newFriendService(db)
	alice := createUser(t, db, "alice", 0, 0)

	_, err := svc.SendRequest(context.Background(), alice.ID, alice.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, err.(*models.AppError).Code)
}

func TestFriendService_SendRequestDuplicate(t *testing.T) {
	db := setupDB(t)
	svc := newFriendService(db)
	alice := createUser(t, db, "alice", 0, 0)
	bob := createUser(t, db, "bob", 0, 0)

	_, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, err.(*models.AppError).Code)
}

func TestFriendService_SendRequestToExistingFriend(t *testing.T) {
	db := setupDB(t)
	svc := newFriendService(db)
	alice := createUser(t, db, "alice", 0, 0)
	bob := createUser(t, db, "bob", 0, 0)
	befriend(t, db, alice.ID, bob.ID)

	_, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, err.(*models.AppError).Code)
}

func TestFriendService_AcceptOnlyRecipient(t *testing.T) {
	db := setupDB(t)
	svc := newFriendService(db)
	alice := createUser(t, db, "alice", 0, 0)
	bob := createUser(t, db, "bob", 0, 0)
	carol := createUser(t, db, "carol", 0, 0)

	req, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), carol.ID, req.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, err.(*models.AppError).Code)

	// The sender cannot accept their own request either.
	_, err = svc.Accept(context.Background(), alice.ID, req.ID)
	require.Error(t, err)
}

func TestFriendService_Reject(t *testing.T) {
	db := setupDB(t)
	svc := newFriendService(db)
	alice := createUser(t, db, "alice", 0, 0)
	bob := createUser(t, db, "bob", 0, 0)

	req, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Reject(context.Background(), bob.ID, req.ID))

	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&count).Error)
	assert.Zero(t, count)

	friends, err := svc.Friends(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestFriendService_Unfriend(t *testing.T) {
	db := setupDB(t)
	svc := newFriendService(db)
	alice := createUser(t, db, "alice", 0, 0)
	bob := createUser(t, db, "bob", 0, 0)
	befriend(t, db, alice.ID, bob.ID)

	// Either party may remove; here the higher-ID side does.
	require.NoError(t, svc.Unfriend(context.Background(), bob.ID, alice.ID))

	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	assert.Zero(t, count)

	// Removing again reports not found.
	err := svc.Unfriend(context.Background(), bob.ID, alice.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, err.(*models.AppError).Code)
}
