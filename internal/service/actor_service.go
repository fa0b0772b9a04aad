package service

import (
	"context"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/models"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
)

type ActorService struct {
	actors *repository.ActorRepository
}

func NewActorService(actors *repository.ActorRepository) *ActorService {
	return &ActorService{actors: actors}
}

func (s *ActorService) List(ctx context.Context, search string, skip, limit int) ([]models.Actor, error) {
	actors, err := s.actors.List(ctx, search, skip, limit)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	return actors, nil
}

func (s *ActorService) All(ctx context.Context) ([]models.Actor, error) {
	actors, err := s.actors.All(ctx)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	return actors, nil
}

func (s *ActorService) Get(ctx context.Context, id int) (*models.Actor, error) {
	a, err := s.actors.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("Internal server error", err)
	}
	if a == nil {
		return nil, apperr.NotFound("Actor not found")
	}
	return a, nil
}

func (s *ActorService) Count(ctx context.Context) (int64, error) {
	n, err := s.actors.Count(ctx)
	if err != nil {
		return 0, apperr.Store("Internal server error", err)
	}
	return n, nil
}

type ActorData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *ActorService) Create(ctx context.Context, data ActorData) (*models.Actor, error) {
	if data.FirstName == "" || data.LastName == "" {
		return nil, apperr.Validation("first_name and last_name are required")
	}

	a := &models.Actor{FirstName: data.FirstName, LastName: data.LastName}
	if err := s.actors.Create(ctx, a); err != nil {
		return nil, apperr.Store("Failed to create actor", err)
	}
	return a, nil
}

// Update saltea los campos vacíos.
func (s *ActorService) Update(ctx context.Context, id int, data ActorData) error {
	a, err := s.actors.GetByID(ctx, id)
	if err != nil {
		return apperr.Store("Internal server error", err)
	}
	if a == nil {
		return apperr.NotFound("Actor not found")
	}

	if data.FirstName != "" {
		a.FirstName = data.FirstName
	}
	if data.LastName != "" {
		a.LastName = data.LastName
	}

	if err := s.actors.Update(ctx, a); err != nil {
		return apperr.Store("Failed to update actor", err)
	}
	return nil
}

func (s *ActorService) Delete(ctx context.Context, id int) error {
	a, err := s.actors.GetByID(ctx, id)
	if err != nil {
		return apperr.Store("Internal server error", err)
	}
	if a == nil {
		return apperr.NotFound("Actor not found")
	}

	if err := s.actors.Delete(ctx, a); err != nil {
		return apperr.Store("Failed to delete actor", err)
	}
	return nil
}
