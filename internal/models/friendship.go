package models

import "time"

// FriendRequest is a directed pending request from one user to another,
// unique per ordered pair. Accepting converts it into a Friendship and
// removes it; rejecting just removes it.
type FriendRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FromUserID uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"from_user_id"`
	FromUser   User      `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUserID   uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"to_user_id"`
	ToUser     User      `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}

// Friendship is an undirected pair of users. Rows are stored canonically with
// the lower user ID first so the symmetric relation never duplicates.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user1_id"`
	User1     User      `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2ID   uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user2_id"`
	User2     User      `gorm:"foreignKey:User2ID" json:"user2,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// CanonicalPair orders two user IDs for canonical friendship storage.
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// OtherUser returns the friend of the given user in this friendship.
func (f *Friendship) OtherUser(userID uint) uint {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}
