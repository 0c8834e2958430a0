package repository

import (
	"context"
	"errors"

	"taskquest/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines persistence for friend requests and friendships.
// Friendships are stored canonically (lower user ID first); the symmetric
// lookup is handled here so callers never worry about storage order.
type FriendRepository interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	GetRequestBetween(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error)
	DeleteRequest(ctx context.Context, id uint) error
	IncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	SentRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	CreateFriendship(ctx context.Context, userA, userB uint) (*models.Friendship, error)
	GetFriendship(ctx context.Context, userA, userB uint) (*models.Friendship, error)
	AreFriends(ctx context.Context, userA, userB uint) (bool, error)
	DeleteFriendship(ctx context.Context, id uint) error
	Friends(ctx context.Context, userID uint) ([]models.User, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository returns a new FriendRepository implementation.
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("FriendRequest", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *friendRepository) GetRequestBetween(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *friendRepository) DeleteRequest(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FriendRequest{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) IncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Preload("FromUser").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *friendRepository) SentRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_user_id = ?", userID).
		Preload("ToUser").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

// CreateFriendship stores the pair canonically so the same two users can
// never produce two rows regardless of request direction.
func (r *friendRepository) CreateFriendship(ctx context.Context, userA, userB uint) (*models.Friendship, error) {
	u1, u2 := models.CanonicalPair(userA, userB)
	friendship := &models.Friendship{User1ID: u1, User2ID: u2}
	err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		FirstOrCreate(friendship).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return friendship, nil
}

func (r *friendRepository) GetFriendship(ctx context.Context, userA, userB uint) (*models.Friendship, error) {
	u1, u2 := models.CanonicalPair(userA, userB)
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userA, userB uint) (bool, error) {
	friendship, err := r.GetFriendship(ctx, userA, userB)
	if err != nil {
		return false, err
	}
	return friendship != nil, nil
}

func (r *friendRepository) DeleteFriendship(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Friendship{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) Friends(ctx context.Context, userID uint) ([]models.User, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Find(&friendships).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(friendships) == 0 {
		return []models.User{}, nil
	}

	friendIDs := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		friendIDs = append(friendIDs, f.OtherUser(userID))
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", friendIDs).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
