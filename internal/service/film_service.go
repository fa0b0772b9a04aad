package service

import (
	"context"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/models"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
)

type FilmService struct {
	films *repository.FilmRepository
}

func NewFilmService(films *repository.FilmRepository) *FilmService {
	return &FilmService{films: films}
}

func (s *FilmService) List(ctx context.Context, f repository.FilmFilter) ([]models.Film, error) {
	films, err := s.films.List(ctx, f)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	return films, nil
}

func (s *FilmService) All(ctx context.Context) ([]models.Film, error) {
	films, err := s.films.All(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	return films, nil
}

func (s *FilmService) Get(ctx context.Context, id int) (*models.Film, error) {
	f, err := s.films.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	if f == nil {
		return nil, apperr.NotFound("Film not found")
	}
	return f, nil
}

// FilmStats es la respuesta de GET /films/stats.
type FilmStats struct {
	TotalFilms    int64            `json:"total_films"`
	Ratings       map[string]int64 `json:"ratings"`
	YearRange     YearRange        `json:"year_range"`
	AvgRentalRate float64          `json:"avg_rental_rate"`
}

type YearRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

func (s *FilmService) Stats(ctx context.Context) (*FilmStats, error) {
	total, err := s.films.Count(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}

	ratings, err := s.films.DistinctRatings(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	ratingCounts := make(map[string]int64, len(ratings))
	for _, rt := range ratings {
		n, err := s.films.CountByRating(ctx, rt)
		if err != nil {
			return nil, apperr.Store("Internal server error", err)
		}
		ratingCounts[rt] = n
	}

	minYear, maxYear, err := s.films.YearRange(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}

	avg, err := s.films.AvgRentalRate(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}

	return &FilmStats{
		TotalFilms:    total,
		Ratings:       ratingCounts,
		YearRange:     YearRange{Min: minYear, Max: maxYear},
		AvgRentalRate: avg,
	}, nil
}

// ProductStats es la respuesta de GET /products/stats.
type ProductStats struct {
	TotalProducts int64    `json:"total_products"`
	TotalRatings  int      `json:"total_ratings"`
	Ratings       []string `json:"ratings"`
}

func (s *FilmService) ProductStats(ctx context.Context) (*ProductStats, error) {
	total, err := s.films.Count(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	ratings, err := s.films.DistinctRatings(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	return &ProductStats{TotalProducts: total, TotalRatings: len(ratings), Ratings: ratings}, nil
}

func (s *FilmService) Ratings(ctx context.Context) ([]string, error) {
	ratings, err := s.films.DistinctRatings(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	return ratings, nil
}

type CreateFilmData struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	ReleaseYear *int     `json:"release_year"`
	RentalRate  *float64 `json:"rental_rate"`
	Length      *int     `json:"length"`
	Rating      *string  `json:"rating"`
}

func (s *FilmService) Create(ctx context.Context, data CreateFilmData) (*models.Film, error) {
	if data.Title == "" {
		return nil, apperr.Validation("title is required")
	}

	f := &models.Film{
		Title:       data.Title,
		Description: data.Description,
		ReleaseYear: data.ReleaseYear,
		RentalRate:  4.99,
		Length:      data.Length,
		LanguageID:  1,
	}
	if data.RentalRate != nil {
		f.RentalRate = *data.RentalRate
	}
	rating := "G"
	if data.Rating != nil && *data.Rating != "" {
		rating = *data.Rating
	}
	f.Rating = &rating

	if err := s.films.Create(ctx, f); err != nil {
		return nil, apperr.Store("Failed to create film", err)
	}
	return f, nil
}

func (s *FilmService) CreateBulk(ctx context.Context, items []CreateFilmData) (int, error) {
	// Tope de seguridad.
	if len(items) > 10 {
		items = items[:10]
	}

	films := make([]*models.Film, 0, len(items))
	for _, data := range items {
		title := data.Title
		if title == "" {
			title = "Untitled"
		}
		f := &models.Film{
			Title:       title,
			Description: data.Description,
			ReleaseYear: data.ReleaseYear,
			RentalRate:  4.99,
			Length:      data.Length,
			LanguageID:  1,
		}
		if data.RentalRate != nil {
			f.RentalRate = *data.RentalRate
		}
		rating := "G"
		if data.Rating != nil && *data.Rating != "" {
			rating = *data.Rating
		}
		f.Rating = &rating
		films = append(films, f)
	}

	if err := s.films.CreateMany(ctx, films); err != nil {
		return 0, apperr.Store("Failed to bulk create films", err)
	}
	return len(films), nil
}

type UpdateFilmData struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ReleaseYear int     `json:"release_year"`
	RentalRate  float64 `json:"rental_rate"`
	Length      int     `json:"length"`
	Rating      string  `json:"rating"`
}

// Update aplica solo los campos con valor. Un valor vacío/cero es
// indistinguible de "no enviado" y también se saltea.
func (s *FilmService) Update(ctx context.Context, id int, data UpdateFilmData) error {
	f, err := s.films.GetByID(ctx, id)
	if err != nil {
		return apperr.Store("Internal server error", err)
	}
	if f == nil {
		return apperr.NotFound("Film not found")
	}

	if data.Title != "" {
		f.Title = data.Title
	}
	if data.Description != "" {
		f.Description = &data.Description
	}
	if data.ReleaseYear != 0 {
		f.ReleaseYear = &data.ReleaseYear
	}
	if data.RentalRate != 0 {
		f.RentalRate = data.RentalRate
	}
	if data.Length != 0 {
		f.Length = &data.Length
	}
	if data.Rating != "" {
		f.Rating = &data.Rating
	}

	if err := s.films.Update(ctx, f); err != nil {
		return apperr.Store("Failed to update film", err)
	}
	return nil
}

func (s *FilmService) Delete(ctx context.Context, id int) error {
	f, err := s.films.GetByID(ctx, id)
	if err != nil {
		return apperr.Store("Internal server error", err)
	}
	if f == nil {
		return apperr.NotFound("Film not found")
	}

	if err := s.films.Delete(ctx, f); err != nil {
		return apperr.Store("Failed to delete film", err)
	}
	return nil
}
