package models

// Rank is a named tier unlocked by an XP threshold. Ranks are immutable
// reference data seeded once; ordering is strictly by RequiredXP.
type Rank struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	RequiredXP int64  `gorm:"not null;index" json:"required_xp"`
	ImageURL   string `json:"image_url"`
}

// TableName specifies the table name for GORM
func (Rank) TableName() string {
	return "ranks"
}

// CurrentRank returns the rank with the greatest RequiredXP that does not
// exceed xp, or nil if even the lowest threshold is out of reach. The ranks
// slice may be in any order; comparison is by RequiredXP, never by ID.
func CurrentRank(ranks []Rank, xp int64) *Rank {
	var best *Rank
	for i := range ranks {
		r := &ranks[i]
		if r.RequiredXP > xp {
			continue
		}
		if best == nil || r.RequiredXP > best.RequiredXP {
			best = r
		}
	}
	return best
}

// Outranks reports whether rank a is at least rank b in the ladder, comparing
// by XP threshold.
func Outranks(a, b *Rank) bool {
	if a == nil {
		return b == nil
	}
	if b == nil {
		return true
	}
	return a.RequiredXP >= b.RequiredXP
}
