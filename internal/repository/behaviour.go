package repository

import (
	"context"
	"errors"

	"birdlog/internal/cache"
	"birdlog/internal/models"

	"gorm.io/gorm"
)

// BehaviourRepository manages the behaviour catalog. The catalog has an
// independent lifecycle from notes; deleting an entry cascades to its note
// associations.
type BehaviourRepository interface {
	List(ctx context.Context) ([]models.Behaviour, error)
	GetByID(ctx context.Context, id uint) (*models.Behaviour, error)
	Delete(ctx context.Context, id uint) error
}

type behaviourRepository struct {
	db *gorm.DB
}

// NewBehaviourRepository creates a new behaviour catalog repository
func NewBehaviourRepository(db *gorm.DB) BehaviourRepository {
	return &behaviourRepository{db: db}
}

func (r *behaviourRepository) List(ctx context.Context) ([]models.Behaviour, error) {
	var behaviours []models.Behaviour
	err := cache.Aside(ctx, cache.BehavioursKey, &behaviours, cache.CatalogTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&behaviours).Error
	})
	if err != nil {
		return nil, err
	}
	return behaviours, nil
}

func (r *behaviourRepository) GetByID(ctx context.Context, id uint) (*models.Behaviour, error) {
	var behaviour models.Behaviour
	if err := r.db.WithContext(ctx).First(&behaviour, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Behaviour", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &behaviour, nil
}

// Delete removes a catalog entry and all of its note associations in one
// transaction, then invalidates the cached catalog.
func (r *behaviourRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("behaviour_id = ?", id).Delete(&models.NoteBehaviour{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Behaviour{}, id).Error
	})
	if err != nil {
		return err
	}

	cache.Invalidate(ctx, cache.BehavioursKey)
	return nil
}
