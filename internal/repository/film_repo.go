package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ganeshdatta23/skillstacker/internal/models"
)

type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// FilmFilter agrupa los filtros del listado. Los campos en cero no filtran.
type FilmFilter struct {
	Search  string
	Rating  string
	MinYear int
	MaxYear int
	Skip    int
	Limit   int
}

func (r *FilmRepository) List(ctx context.Context, f FilmFilter) ([]models.Film, error) {
	q := r.db.WithContext(ctx).Model(&models.Film{})

	if f.Search != "" {
		pat := "%" + escapeLike(f.Search) + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pat, pat)
	}
	if f.Rating != "" {
		q = q.Where("rating = ?", f.Rating)
	}
	if f.MinYear > 0 {
		q = q.Where("release_year >= ?", f.MinYear)
	}
	if f.MaxYear > 0 {
		q = q.Where("release_year <= ?", f.MaxYear)
	}

	var films []models.Film
	if err := q.Offset(f.Skip).Limit(f.Limit).Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

func (r *FilmRepository) All(ctx context.Context) ([]models.Film, error) {
	var films []models.Film
	if err := r.db.WithContext(ctx).Find(&films).Error; err != nil {
		return nil, err
	}
	return films, nil
}

func (r *FilmRepository) GetByID(ctx context.Context, id int) (*models.Film, error) {
	var f models.Film
	err := r.db.WithContext(ctx).Where("film_id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FilmRepository) SearchByTitle(ctx context.Context, term string, skip, limit int) ([]models.Film, error) {
	pat := "%" + escapeLike(term) + "%"
	var films []models.Film
	err := r.db.WithContext(ctx).
		Where("title ILIKE ?", pat).
		Offset(skip).Limit(limit).
		Find(&films).Error
	if err != nil {
		return nil, err
	}
	return films, nil
}

func (r *FilmRepository) Create(ctx context.Context, f *models.Film) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(f).Error
	})
}

func (r *FilmRepository) CreateMany(ctx context.Context, films []*models.Film) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range films {
			if err := tx.Create(f).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *FilmRepository) Update(ctx context.Context, f *models.Film) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(f).Error
	})
}

func (r *FilmRepository) Delete(ctx context.Context, f *models.Film) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(f).Error
	})
}

func (r *FilmRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Film{}).Count(&n).Error
	return n, err
}

func (r *FilmRepository) CountByRating(ctx context.Context, rating string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Film{}).Where("rating = ?", rating).Count(&n).Error
	return n, err
}

func (r *FilmRepository) DistinctRatings(ctx context.Context) ([]string, error) {
	var ratings []*string
	err := r.db.WithContext(ctx).Model(&models.Film{}).
		Distinct("rating").
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ratings))
	for _, rt := range ratings {
		if rt != nil && *rt != "" {
			out = append(out, *rt)
		}
	}
	return out, nil
}

// YearRange devuelve el año mínimo y máximo de estreno (nil si no hay datos).
func (r *FilmRepository) YearRange(ctx context.Context) (*int, *int, error) {
	var row struct {
		Min *int
		Max *int
	}
	err := r.db.WithContext(ctx).Model(&models.Film{}).
		Select("MIN(release_year) AS min, MAX(release_year) AS max").
		Where("release_year IS NOT NULL").
		Scan(&row).Error
	if err != nil {
		return nil, nil, err
	}
	return row.Min, row.Max, nil
}

func (r *FilmRepository) AvgRentalRate(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.Film{}).
		Select("AVG(rental_rate)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// escapeLike neutraliza los comodines de LIKE en términos de búsqueda.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
