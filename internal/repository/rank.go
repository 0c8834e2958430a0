package repository

import (
	"context"
	"errors"

	"taskquest/internal/cache"
	"taskquest/internal/models"

	"gorm.io/gorm"
)

// RankRepository provides read access to the immutable rank table.
type RankRepository interface {
	List(ctx context.Context) ([]models.Rank, error)
	GetByID(ctx context.Context, id uint) (*models.Rank, error)
}

type rankRepository struct {
	db *gorm.DB
}

// NewRankRepository returns a new RankRepository implementation.
func NewRankRepository(db *gorm.DB) RankRepository {
	return &rankRepository{db: db}
}

// List returns all ranks ordered by ascending XP threshold. The table is
// seeded once and effectively immutable, so it is cached with a long TTL.
func (r *rankRepository) List(ctx context.Context) ([]models.Rank, error) {
	var ranks []models.Rank

	err := cache.Aside(ctx, cache.RankTableKey(), &ranks, cache.RankTableTTL, func() error {
		if err := r.db.WithContext(ctx).Order("required_xp ASC").Find(&ranks).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ranks, nil
}

func (r *rankRepository) GetByID(ctx context.Context, id uint) (*models.Rank, error) {
	var rank models.Rank
	if err := r.db.WithContext(ctx).First(&rank, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rank", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &rank, nil
}
