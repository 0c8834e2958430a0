package service

import (
	"context"

	"taskquest/internal/models"
	"taskquest/internal/repository"
)

// FriendService manages the friendship graph: directed friend requests that
// resolve into a single undirected friendship row per pair.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService creates a friend service.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{friendRepo: friendRepo, userRepo: userRepo}
}

// SendRequest creates a friend request from fromID to toID. Self-requests,
// duplicate requests in the same direction, and requests between existing
// friends are rejected.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error) {
	if fromID == toID {
		return nil, models.NewValidationError("you cannot send a friend request to yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, toID); err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.AreFriends(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, models.NewConflictError("you are already friends")
	}

	existing, err := s.friendRepo.GetRequestBetween(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("friend request already sent")
	}

	req := &models.FriendRequest{FromUserID: fromID, ToUserID: toID}
	if err := s.friendRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Accept turns a friend request into a friendship. Only the recipient may
// accept; the request row is removed once the friendship exists.
func (s *FriendService) Accept(ctx context.Context, userID, requestID uint) (*models.Friendship, error) {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ToUserID != userID {
		return nil, models.NewForbiddenError("this friend request is not addressed to you")
	}

	friendship, err := s.friendRepo.CreateFriendship(ctx, req.FromUserID, req.ToUserID)
	if err != nil {
		return nil, err
	}
	if err := s.friendRepo.DeleteRequest(ctx, req.ID); err != nil {
		return nil, err
	}
	return friendship, nil
}

// Reject deletes a friend request. Only the recipient may reject.
func (s *FriendService) Reject(ctx context.Context, userID, requestID uint) error {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ToUserID != userID {
		return models.NewForbiddenError("this friend request is not addressed to you")
	}
	return s.friendRepo.DeleteRequest(ctx, req.ID)
}

// Cancel withdraws a request the user sent.
func (s *FriendService) Cancel(ctx context.Context, userID, requestID uint) error {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.FromUserID != userID {
		return models.NewForbiddenError("you did not send this friend request")
	}
	return s.friendRepo.DeleteRequest(ctx, req.ID)
}

// Unfriend removes the friendship between userID and otherID. Either party
// may remove it; the operation is symmetric.
func (s *FriendService) Unfriend(ctx context.Context, userID, otherID uint) error {
	friendship, err := s.friendRepo.GetFriendship(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return models.NewNotFoundError("Friendship", otherID)
	}
	return s.friendRepo.DeleteFriendship(ctx, friendship.ID)
}

// Friends lists the user's friends.
func (s *FriendService) Friends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.Friends(ctx, userID)
}

// IncomingRequests lists pending requests addressed to the user.
func (s *FriendService) IncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.IncomingRequests(ctx, userID)
}

// SentRequests lists pending requests the user sent.
func (s *FriendService) SentRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.SentRequests(ctx, userID)
}
