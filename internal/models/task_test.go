package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyRewardMultiplier(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		multiplier float64
	}{
		{DifficultyVeryEasy, 0.5},
		{DifficultyEasy, 0.75},
		{DifficultyMedium, 1.0},
		{DifficultyHard, 1.5},
		{DifficultyVeryHard, 2.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.multiplier, tt.difficulty.RewardMultiplier())
	}

	// Out-of-range falls back to the neutral multiplier.
	assert.Equal(t, 1.0, Difficulty(0).RewardMultiplier())
	assert.Equal(t, 1.0, Difficulty(9).RewardMultiplier())
}

func TestDifficultyValid(t *testing.T) {
	assert.False(t, Difficulty(0).Valid())
	assert.True(t, DifficultyVeryEasy.Valid())
	assert.True(t, DifficultyVeryHard.Valid())
	assert.False(t, Difficulty(6).Valid())
}

func TestTaskBeforeSaveDerivesRewards(t *testing.T) {
	tests := []struct {
		name         string
		task         Task
		expectedXP   int64
		expectedGold int64
	}{
		{
			name:         "medium keeps base",
			task:         Task{Difficulty: DifficultyMedium, BaseRewardXP: 5, BaseRewardGold: 10},
			expectedXP:   5,
			expectedGold: 10,
		},
		{
			name:         "hard scales by 1.5 rounding down",
			task:         Task{Difficulty: DifficultyHard, BaseRewardXP: 5, BaseRewardGold: 10},
			expectedXP:   7,
			expectedGold: 15,
		},
		{
			name:         "very easy halves rounding down",
			task:         Task{Difficulty: DifficultyVeryEasy, BaseRewardXP: 5, BaseRewardGold: 5},
			expectedXP:   2,
			expectedGold: 2,
		},
		{
			name:         "very hard doubles",
			task:         Task{Difficulty: DifficultyVeryHard, BaseRewardXP: 5, BaseRewardGold: 10},
			expectedXP:   10,
			expectedGold: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.task
			assert.NoError(t, task.BeforeSave(nil))
			assert.Equal(t, tt.expectedXP, task.RewardXP)
			assert.Equal(t, tt.expectedGold, task.RewardGold)
		})
	}
}
