// Package service implements the business rules of the application: the
// reward ledger, task lifecycle, collaboration consensus, shop and equip
// rules, and the friendship graph.
package service

import (
	"errors"

	"taskquest/internal/models"
	"taskquest/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reward kinds recorded in metrics.
const (
	rewardKindGrant    = "grant"
	rewardKindReversal = "reversal"
	rewardKindPenalty  = "penalty"
)

// applyReward adds the deltas to the user's XP and gold counters inside the
// caller's transaction, clamping each counter at zero. Reversal is the same
// operation with negated deltas. The ledger knows nothing about tasks; the
// caller computes the deltas.
func applyReward(tx *gorm.DB, userID uint, xpDelta, goldDelta int64, kind string) error {
	var user models.User
	if err := lockForUpdate(tx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		return models.NewInternalError(err)
	}

	user.XP = clampZero(user.XP + xpDelta)
	user.Gold = clampZero(user.Gold + goldDelta)

	if err := tx.Model(&user).Select("xp", "gold").Updates(map[string]interface{}{
		"xp":   user.XP,
		"gold": user.Gold,
	}).Error; err != nil {
		return models.NewInternalError(err)
	}

	observability.RewardsGranted.WithLabelValues(kind).Inc()
	return nil
}

func clampZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// lockForUpdate takes a row-level lock on Postgres. SQLite (used by the test
// suite) serializes writers on its own and rejects FOR UPDATE syntax.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
