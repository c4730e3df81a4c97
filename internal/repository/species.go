package repository

import (
	"context"

	"birdlog/internal/cache"
	"birdlog/internal/models"

	"gorm.io/gorm"
)

// SpeciesRepository reads the species reference catalog. The catalog is
// consumed, never mutated, so listings are served cache-aside.
type SpeciesRepository interface {
	List(ctx context.Context) ([]models.Species, error)
}

type speciesRepository struct {
	db *gorm.DB
}

// NewSpeciesRepository creates a new species catalog repository
func NewSpeciesRepository(db *gorm.DB) SpeciesRepository {
	return &speciesRepository{db: db}
}

func (r *speciesRepository) List(ctx context.Context) ([]models.Species, error) {
	var species []models.Species
	err := cache.Aside(ctx, cache.SpeciesKey, &species, cache.CatalogTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&species).Error
	})
	if err != nil {
		return nil, err
	}
	return species, nil
}
