package service

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/cache"
	"github.com/ganeshdatta23/skillstacker/internal/models"
)

// Fuentes que el agregador consulta. Interfaces angostas para poder
// fakear cada store en los tests.
type FilmSource interface {
	SearchByTitle(ctx context.Context, term string, skip, limit int) ([]models.Film, error)
	Count(ctx context.Context) (int64, error)
	DistinctRatings(ctx context.Context) ([]string, error)
}

type ActorSource interface {
	List(ctx context.Context, search string, skip, limit int) ([]models.Actor, error)
	Count(ctx context.Context) (int64, error)
}

type UserSource interface {
	SearchByNameOrEmail(ctx context.Context, term string, skip, limit int) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

type CategorySource interface {
	Names(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type OrderSource interface {
	CountRentals(ctx context.Context) (int64, error)
	CountPayments(ctx context.Context) (int64, error)
}

type ReviewSource interface {
	Search(ctx context.Context, term string, skip, limit int) ([]models.ReviewDoc, error)
	Count(ctx context.Context) (int64, error)
}

type PublicationSource interface {
	SearchProbe(ctx context.Context, term string, skip, limit int) ([]models.PublicationDoc, error)
	CountProbe(ctx context.Context) (int64, error)
	DistinctTypesAndGroups(ctx context.Context) ([]string, []string, error)
}

// UnifiedService abre una búsqueda en abanico sobre los dos stores y
// normaliza los resultados bajo un solo contrato de respuesta.
type UnifiedService struct {
	films      FilmSource
	actors     ActorSource
	users      UserSource
	categories CategorySource
	orders     OrderSource
	reviews    ReviewSource
	pubs       PublicationSource
	cache      *cache.Cache
}

func NewUnifiedService(
	films FilmSource,
	actors ActorSource,
	users UserSource,
	categories CategorySource,
	orders OrderSource,
	reviews ReviewSource,
	pubs PublicationSource,
	c *cache.Cache,
) *UnifiedService {
	return &UnifiedService{
		films:      films,
		actors:     actors,
		users:      users,
		categories: categories,
		orders:     orders,
		reviews:    reviews,
		pubs:       pubs,
		cache:      c,
	}
}

var sanitizeRe = regexp.MustCompile(`[^\w\s-]`)

// SanitizeTerm deja solo alfanuméricos, espacios y guiones, y trunca a 100.
func SanitizeTerm(term string) string {
	sanitized := strings.TrimSpace(sanitizeRe.ReplaceAllString(term, ""))
	runes := []rune(sanitized)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return string(runes)
}

// ====== Items normalizados ======

type FilmItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Rating      *string `json:"rating"`
	Length      *int    `json:"length"`
	Type        string  `json:"type"`
}

type ActorItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Type      string `json:"type"`
}

type UserItem struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
	Type   string `json:"type"`
}

type PublicationItem struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Type    string   `json:"type"`
	Groups  []string `json:"groups"`
}

type ReviewItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
	ProductID *int   `json:"product_id"`
	Type      string `json:"type"`
}

// SearchResult agrupa los items por fuente. Las fuentes no consultadas
// quedan como arrays vacíos, nunca se omiten.
type SearchResult struct {
	Query        string            `json:"query"`
	TotalResults int               `json:"total_results"`
	Films        []FilmItem        `json:"films"`
	Actors       []ActorItem       `json:"actors"`
	Users        []UserItem        `json:"users"`
	Publications []PublicationItem `json:"publications"`
	Reviews      []ReviewItem      `json:"reviews"`
}

// truncateContent recorta el contenido a 200 caracteres para el listado.
func truncateContent(s string) string {
	runes := []rune(s)
	if len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return s
}

// Search hace el fan-out secuencial sobre las cinco fuentes. La falla de
// una fuente individual se loguea y degrada a vacío; nunca aborta el
// request completo.
func (s *UnifiedService) Search(ctx context.Context, q, category string, skip, limit int) (*SearchResult, error) {
	term := SanitizeTerm(q)
	if term == "" {
		return nil, apperr.Validation("Invalid search term")
	}

	result := &SearchResult{
		Query:        q,
		Films:        []FilmItem{},
		Actors:       []ActorItem{},
		Users:        []UserItem{},
		Publications: []PublicationItem{},
		Reviews:      []ReviewItem{},
	}

	if category == "" || category == "films" {
		result.Films = s.searchFilms(ctx, term, skip, limit)
	}
	if category == "" || category == "actors" {
		result.Actors = s.searchActors(ctx, term, skip, limit)
	}
	if category == "" || category == "users" {
		result.Users = s.searchUsers(ctx, term, skip, limit)
	}
	if category == "" || category == "publications" {
		result.Publications = s.searchPublications(ctx, term, skip, limit)
	}
	if category == "" || category == "reviews" {
		result.Reviews = s.searchReviews(ctx, term, skip, limit)
	}

	result.TotalResults = len(result.Films) + len(result.Actors) + len(result.Users) +
		len(result.Publications) + len(result.Reviews)
	return result, nil
}

func (s *UnifiedService) searchFilms(ctx context.Context, term string, skip, limit int) []FilmItem {
	films, err := s.films.SearchByTitle(ctx, term, skip, limit)
	if err != nil {
		log.Printf("[unified] films search error: %v\n", err)
		return []FilmItem{}
	}

	items := make([]FilmItem, 0, len(films))
	for _, f := range films {
		items = append(items, FilmItem{
			ID:          f.FilmID,
			Title:       f.Title,
			Description: f.Description,
			Rating:      f.Rating,
			Length:      f.Length,
			Type:        "film",
		})
	}
	return items
}

func (s *UnifiedService) searchActors(ctx context.Context, term string, skip, limit int) []ActorItem {
	actors, err := s.actors.List(ctx, term, skip, limit)
	if err != nil {
		log.Printf("[unified] actors search error: %v\n", err)
		return []ActorItem{}
	}

	items := make([]ActorItem, 0, len(actors))
	for _, a := range actors {
		items = append(items, ActorItem{
			ID:        a.ActorID,
			Name:      a.FirstName + " " + a.LastName,
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Type:      "actor",
		})
	}
	return items
}

func (s *UnifiedService) searchUsers(ctx context.Context, term string, skip, limit int) []UserItem {
	users, err := s.users.SearchByNameOrEmail(ctx, term, skip, limit)
	if err != nil {
		log.Printf("[unified] users search error: %v\n", err)
		return []UserItem{}
	}

	items := make([]UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, UserItem{
			ID:     u.CustomerID,
			Name:   u.FirstName + " " + u.LastName,
			Email:  u.Email,
			Active: u.Activebool,
			Type:   "user",
		})
	}
	return items
}

func (s *UnifiedService) searchPublications(ctx context.Context, term string, skip, limit int) []PublicationItem {
	docs, err := s.pubs.SearchProbe(ctx, term, skip, limit)
	if err != nil {
		log.Printf("[unified] publications search error: %v\n", err)
		return []PublicationItem{}
	}

	items := make([]PublicationItem, 0, len(docs))
	for _, d := range docs {
		// Una publicación sin type se etiqueta con su origen.
		typ := d.Type
		if typ == "" {
			typ = "publication"
		}
		groups := d.Groups
		if groups == nil {
			groups = []string{}
		}
		items = append(items, PublicationItem{
			ID:      d.ID.Hex(),
			Title:   d.Title,
			Content: truncateContent(d.Content),
			Type:    typ,
			Groups:  groups,
		})
	}
	return items
}

func (s *UnifiedService) searchReviews(ctx context.Context, term string, skip, limit int) []ReviewItem {
	docs, err := s.reviews.Search(ctx, term, skip, limit)
	if err != nil {
		log.Printf("[unified] reviews search error: %v\n", err)
		return []ReviewItem{}
	}

	items := make([]ReviewItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, ReviewItem{
			ID:        d.ID.Hex(),
			Title:     d.Title,
			Content:   truncateContent(d.Content),
			Rating:    d.Rating,
			ProductID: d.ProductID,
			Type:      "review",
		})
	}
	return items
}

// ====== Stats ======

type PostgresStats struct {
	Films      int64 `json:"films"`
	Actors     int64 `json:"actors"`
	Categories int64 `json:"categories"`
	Users      int64 `json:"users"`
	Rentals    int64 `json:"rentals"`
	Payments   int64 `json:"payments"`
}

type MongoStats struct {
	Publications int64 `json:"publications"`
	Reviews      int64 `json:"reviews"`
}

// StatsResult reporta conteos por fuente. Total suma solo las cinco fuentes
// buscables.
type StatsResult struct {
	Postgresql PostgresStats `json:"postgresql"`
	Mongodb    MongoStats    `json:"mongodb"`
	Total      int64         `json:"total"`
}

const statsCacheKey = "unified:stats"

func (s *UnifiedService) Stats(ctx context.Context, refresh bool) (*StatsResult, error) {
	if !refresh {
		var cached StatsResult
		if ok, _ := s.cache.GetJSON(ctx, statsCacheKey, &cached); ok {
			return &cached, nil
		}
	}

	stats := &StatsResult{}
	var err error

	if stats.Postgresql.Films, err = s.films.Count(ctx); err != nil {
		return nil, apperr.Store("Failed to get statistics", err)
	}
	if stats.Postgresql.Actors, err = s.actors.Count(ctx); err != nil {
		return nil, apperr.Store("Failed to get statistics", err)
	}
	if stats.Postgresql.Categories, err = s.categories.Count(ctx); err != nil {
		return nil, apperr.Store("Failed to get statistics", err)
	}
	if stats.Postgresql.Users, err = s.users.Count(ctx); err != nil {
		return nil, apperr.Store("Failed to get statistics", err)
	}
	if stats.Postgresql.Rentals, err = s.orders.CountRentals(ctx); err != nil {
		return nil, apperr.Store("Failed to get statistics", err)
	}
	if stats.Postgresql.Payments, err = s.orders.CountPayments(ctx); err != nil {
		return nil, apperr.Store("Failed to get statistics", err)
	}

	// El document store degrada a cero, no rompe el endpoint.
	if n, err := s.pubs.CountProbe(ctx); err != nil {
		log.Printf("[unified] publications count error: %v\n", err)
	} else {
		stats.Mongodb.Publications = n
	}
	if n, err := s.reviews.Count(ctx); err != nil {
		log.Printf("[unified] reviews count error: %v\n", err)
	} else {
		stats.Mongodb.Reviews = n
	}

	stats.Total = stats.Postgresql.Films + stats.Postgresql.Actors + stats.Postgresql.Users +
		stats.Mongodb.Publications + stats.Mongodb.Reviews

	_ = s.cache.SetJSON(ctx, statsCacheKey, stats, 60)
	return stats, nil
}

// ====== Categorías ======

type CategoriesResult struct {
	FilmRatings       []string `json:"film_ratings"`
	FilmCategories    []string `json:"film_categories"`
	PublicationTypes  []string `json:"publication_types"`
	PublicationGroups []string `json:"publication_groups"`
}

const categoriesCacheKey = "unified:categories"

func (s *UnifiedService) Categories(ctx context.Context, refresh bool) (*CategoriesResult, error) {
	if !refresh {
		var cached CategoriesResult
		if ok, _ := s.cache.GetJSON(ctx, categoriesCacheKey, &cached); ok {
			return &cached, nil
		}
	}

	out := &CategoriesResult{
		FilmRatings:       []string{},
		FilmCategories:    []string{},
		PublicationTypes:  []string{},
		PublicationGroups: []string{},
	}

	ratings, err := s.films.DistinctRatings(ctx)
	if err != nil {
		return nil, apperr.Store("Failed to get categories", err)
	}
	out.FilmRatings = ratings

	names, err := s.categories.Names(ctx)
	if err != nil {
		return nil, apperr.Store("Failed to get categories", err)
	}
	out.FilmCategories = names

	types, groups, err := s.pubs.DistinctTypesAndGroups(ctx)
	if err != nil {
		log.Printf("[unified] publication categories error: %v\n", err)
	} else {
		out.PublicationTypes = types
		out.PublicationGroups = groups
	}

	_ = s.cache.SetJSON(ctx, categoriesCacheKey, out, 60)
	return out, nil
}
