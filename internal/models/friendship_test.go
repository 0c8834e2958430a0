package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair(7, 3)
	assert.Equal(t, uint(3), a)
	assert.Equal(t, uint(7), b)

	a, b = CanonicalPair(3, 7)
	assert.Equal(t, uint(3), a)
	assert.Equal(t, uint(7), b)
}

func TestFriendshipOtherUser(t *testing.T) {
	f := &Friendship{User1ID: 3, User2ID: 7}

	assert.Equal(t, uint(7), f.OtherUser(3))
	assert.Equal(t, uint(3), f.OtherUser(7))
}
