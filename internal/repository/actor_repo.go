package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ganeshdatta23/skillstacker/internal/models"
)

type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

func (r *ActorRepository) List(ctx context.Context, search string, skip, limit int) ([]models.Actor, error) {
	q := r.db.WithContext(ctx).Model(&models.Actor{})
	if search != "" {
		pat := "%" + escapeLike(search) + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ?", pat, pat)
	}

	var actors []models.Actor
	if err := q.Offset(skip).Limit(limit).Find(&actors).Error; err != nil {
		return nil, err
	}
	return actors, nil
}

func (r *ActorRepository) All(ctx context.Context) ([]models.Actor, error) {
	var actors []models.Actor
	if err := r.db.WithContext(ctx).Find(&actors).Error; err != nil {
		return nil, err
	}
	return actors, nil
}

func (r *ActorRepository) GetByID(ctx context.Context, id int) (*models.Actor, error) {
	var a models.Actor
	err := r.db.WithContext(ctx).Where("actor_id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActorRepository) Create(ctx context.Context, a *models.Actor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(a).Error
	})
}

func (r *ActorRepository) Update(ctx context.Context, a *models.Actor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(a).Error
	})
}

func (r *ActorRepository) Delete(ctx context.Context, a *models.Actor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(a).Error
	})
}

func (r *ActorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Actor{}).Count(&n).Error
	return n, err
}
