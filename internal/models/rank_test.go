package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentRank(t *testing.T) {
	ranks := []Rank{
		{ID: 1, Name: "Novice", RequiredXP: 0},
		{ID: 2, Name: "Apprentice", RequiredXP: 100},
		{ID: 3, Name: "Adept", RequiredXP: 300},
	}

	tests := []struct {
		xp       int64
		expected string
	}{
		{0, "Novice"},
		{99, "Novice"},
		{100, "Apprentice"},
		{299, "Apprentice"},
		{300, "Adept"},
		{100000, "Adept"},
	}
	for _, tt := range tests {
		got := CurrentRank(ranks, tt.xp)
		require.NotNil(t, got)
		assert.Equal(t, tt.expected, got.Name)
	}
}

func TestCurrentRankBelowLadder(t *testing.T) {
	ranks := []Rank{{ID: 1, Name: "Apprentice", RequiredXP: 100}}
	assert.Nil(t, CurrentRank(ranks, 50))
	assert.Nil(t, CurrentRank(nil, 50))
}

func TestCurrentRankIgnoresIDOrder(t *testing.T) {
	// IDs deliberately disagree with the XP ordering; only RequiredXP counts.
	ranks := []Rank{
		{ID: 9, Name: "Low", RequiredXP: 0},
		{ID: 1, Name: "High", RequiredXP: 500},
	}
	got := CurrentRank(ranks, 600)
	require.NotNil(t, got)
	assert.Equal(t, "High", got.Name)
}

func TestOutranks(t *testing.T) {
	low := &Rank{ID: 5, RequiredXP: 0}
	high := &Rank{ID: 1, RequiredXP: 500}

	assert.True(t, Outranks(high, low))
	assert.False(t, Outranks(low, high))
	assert.True(t, Outranks(high, high))
	assert.True(t, Outranks(high, nil))
	assert.False(t, Outranks(nil, low))
	assert.True(t, Outranks(nil, nil))
}
