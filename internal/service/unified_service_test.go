package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/cache"
	"github.com/ganeshdatta23/skillstacker/internal/models"
)

// ====== fakes por fuente ======

type fakeFilms struct {
	films   []models.Film
	count   int64
	ratings []string
	err     error
}

func (f *fakeFilms) SearchByTitle(ctx context.Context, term string, skip, limit int) ([]models.Film, error) {
	return f.films, f.err
}
func (f *fakeFilms) Count(ctx context.Context) (int64, error) { return f.count, f.err }
func (f *fakeFilms) DistinctRatings(ctx context.Context) ([]string, error) {
	return f.ratings, f.err
}

type fakeActors struct {
	actors []models.Actor
	count  int64
	err    error
}

func (f *fakeActors) List(ctx context.Context, search string, skip, limit int) ([]models.Actor, error) {
	return f.actors, f.err
}
func (f *fakeActors) Count(ctx context.Context) (int64, error) { return f.count, f.err }

type fakeUsers struct {
	users []models.User
	count int64
	err   error
}

func (f *fakeUsers) SearchByNameOrEmail(ctx context.Context, term string, skip, limit int) ([]models.User, error) {
	return f.users, f.err
}
func (f *fakeUsers) Count(ctx context.Context) (int64, error) { return f.count, f.err }

type fakeCategories struct {
	names []string
	count int64
	err   error
}

func (f *fakeCategories) Names(ctx context.Context) ([]string, error) { return f.names, f.err }
func (f *fakeCategories) Count(ctx context.Context) (int64, error)    { return f.count, f.err }

type fakeOrders struct {
	rentals  int64
	payments int64
	err      error
}

func (f *fakeOrders) CountRentals(ctx context.Context) (int64, error)  { return f.rentals, f.err }
func (f *fakeOrders) CountPayments(ctx context.Context) (int64, error) { return f.payments, f.err }

type fakeReviews struct {
	reviews []models.ReviewDoc
	count   int64
	err     error
}

func (f *fakeReviews) Search(ctx context.Context, term string, skip, limit int) ([]models.ReviewDoc, error) {
	return f.reviews, f.err
}
func (f *fakeReviews) Count(ctx context.Context) (int64, error) { return f.count, f.err }

type fakePubs struct {
	pubs   []models.PublicationDoc
	count  int64
	types  []string
	groups []string
	err    error
}

func (f *fakePubs) SearchProbe(ctx context.Context, term string, skip, limit int) ([]models.PublicationDoc, error) {
	return f.pubs, f.err
}
func (f *fakePubs) CountProbe(ctx context.Context) (int64, error) { return f.count, f.err }
func (f *fakePubs) DistinctTypesAndGroups(ctx context.Context) ([]string, []string, error) {
	return f.types, f.groups, f.err
}

func newTestUnified(films *fakeFilms, actors *fakeActors, users *fakeUsers,
	cats *fakeCategories, orders *fakeOrders, reviews *fakeReviews, pubs *fakePubs) *UnifiedService {
	return NewUnifiedService(films, actors, users, cats, orders, reviews, pubs, new(cache.Cache))
}

func emptySources() (*fakeFilms, *fakeActors, *fakeUsers, *fakeCategories, *fakeOrders, *fakeReviews, *fakePubs) {
	return &fakeFilms{}, &fakeActors{}, &fakeUsers{}, &fakeCategories{}, &fakeOrders{}, &fakeReviews{}, &fakePubs{}
}

// ====== SanitizeTerm ======

func TestSanitizeTermStripsSpecials(t *testing.T) {
	assert.Equal(t, "robert droptable", SanitizeTerm("robert'); droptable"))
	assert.Equal(t, "sci-fi classics", SanitizeTerm("sci-fi classics!"))
	assert.Equal(t, "", SanitizeTerm("$&%!"))
}

func TestSanitizeTermTruncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	assert.Len(t, SanitizeTerm(long), 100)
}

// ====== Search ======

func TestSearchRejectsEmptyTerm(t *testing.T) {
	svc := newTestUnified(emptySources())

	_, err := svc.Search(context.Background(), "!!!", "", 0, 10)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
}

func TestSearchCategoryScoping(t *testing.T) {
	films, actors, users, cats, orders, reviews, pubs := emptySources()
	films.films = []models.Film{{FilmID: 1, Title: "Avengers Unite"}}
	actors.actors = []models.Actor{{ActorID: 7, FirstName: "Ana", LastName: "Reyes"}}

	svc := newTestUnified(films, actors, users, cats, orders, reviews, pubs)

	result, err := svc.Search(context.Background(), "avengers", "actors", 0, 10)
	require.NoError(t, err)

	// Solo la fuente pedida trae resultados, el resto queda vacío (no nil).
	assert.Len(t, result.Actors, 1)
	assert.Equal(t, "Ana Reyes", result.Actors[0].Name)
	assert.Equal(t, "actor", result.Actors[0].Type)
	assert.NotNil(t, result.Films)
	assert.Empty(t, result.Films)
	assert.NotNil(t, result.Users)
	assert.NotNil(t, result.Publications)
	assert.NotNil(t, result.Reviews)
	assert.Equal(t, 1, result.TotalResults)
}

func TestSearchAllSources(t *testing.T) {
	films, actors, users, cats, orders, reviews, pubs := emptySources()
	films.films = []models.Film{{FilmID: 1, Title: "Academy Dinosaur"}}
	users.users = []models.User{{CustomerID: 3, FirstName: "Mary", LastName: "Smith", Email: "mary@example.com", Activebool: true}}
	reviews.reviews = []models.ReviewDoc{{ID: primitive.NewObjectID(), Title: "Great", Content: "Loved it", Rating: 5}}
	pubs.pubs = []models.PublicationDoc{{ID: primitive.NewObjectID(), Title: "Deep Learning", Content: "abstract"}}

	svc := newTestUnified(films, actors, users, cats, orders, reviews, pubs)

	result, err := svc.Search(context.Background(), "anything", "", 0, 10)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalResults)
	assert.Equal(t, "film", result.Films[0].Type)
	assert.Equal(t, "user", result.Users[0].Type)
	assert.Equal(t, "review", result.Reviews[0].Type)
	// Publicación sin type se etiqueta como genérica.
	assert.Equal(t, "publication", result.Publications[0].Type)
	assert.NotNil(t, result.Publications[0].Groups)
}

func TestSearchSourceFailureDegrades(t *testing.T) {
	films, actors, users, cats, orders, reviews, pubs := emptySources()
	films.err = errors.New("connection refused")
	actors.actors = []models.Actor{{ActorID: 1, FirstName: "Nick", LastName: "Wahlberg"}}

	svc := newTestUnified(films, actors, users, cats, orders, reviews, pubs)

	result, err := svc.Search(context.Background(), "nick", "", 0, 10)
	require.NoError(t, err)

	assert.Empty(t, result.Films)
	assert.Len(t, result.Actors, 1)
	assert.Equal(t, 1, result.TotalResults)
}

func TestSearchTruncatesLongContent(t *testing.T) {
	films, actors, users, cats, orders, reviews, pubs := emptySources()
	pubs.pubs = []models.PublicationDoc{{
		ID:      primitive.NewObjectID(),
		Title:   "Long one",
		Content: strings.Repeat("x", 300),
	}}

	svc := newTestUnified(films, actors, users, cats, orders, reviews, pubs)

	result, err := svc.Search(context.Background(), "long", "publications", 0, 10)
	require.NoError(t, err)
	require.Len(t, result.Publications, 1)
	assert.Len(t, result.Publications[0].Content, 203)
	assert.True(t, strings.HasSuffix(result.Publications[0].Content, "..."))
}

// ====== Stats ======

func TestStatsTotalSumsSearchableSources(t *testing.T) {
	films, actors, users, cats, orders, reviews, pubs := emptySources()
	films.count = 1000
	actors.count = 200
	cats.count = 16
	users.count = 599
	orders.rentals = 16044
	orders.payments = 14596
	pubs.count = 50
	reviews.count = 30

	svc := newTestUnified(films, actors, users, cats, orders, reviews, pubs)

	stats, err := svc.Stats(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), stats.Postgresql.Films)
	assert.Equal(t, int64(16044), stats.Postgresql.Rentals)
	assert.Equal(t, int64(50), stats.Mongodb.Publications)
	// El total suma solo las fuentes buscables: films, actors, users,
	// publications y reviews. Categorías, rentas y pagos quedan afuera.
	assert.Equal(t, int64(1000+200+599+50+30), stats.Total)
}

func TestStatsMongoFailureDegradesToZero(t *testing.T) {
	films, actors, users, cats, orders, reviews, pubs := emptySources()
	films.count = 10
	pubs.err = errors.New("server selection timeout")
	reviews.err = errors.New("server selection timeout")

	svc := newTestUnified(films, actors, users, cats, orders, reviews, pubs)

	stats, err := svc.Stats(context.Background(), false)
	require.NoError(t, err)
	assert.Zero(t, stats.Mongodb.Publications)
	assert.Zero(t, stats.Mongodb.Reviews)
	assert.Equal(t, int64(10), stats.Total)
}

func TestStatsPostgresFailureIsFatal(t *testing.T) {
	films, actors, users, cats, orders, reviews, pubs := emptySources()
	films.err = errors.New("connection refused")

	svc := newTestUnified(films, actors, users, cats, orders, reviews, pubs)

	_, err := svc.Stats(context.Background(), false)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(err))
}

// ====== Categories ======

func TestCategoriesCollectsAllAxes(t *testing.T) {
	films, actors, users, cats, orders, reviews, pubs := emptySources()
	films.ratings = []string{"G", "PG", "R"}
	cats.names = []string{"Action", "Comedy"}
	pubs.types = []string{"article", "thesis"}
	pubs.groups = []string{"ml", "nlp"}

	svc := newTestUnified(films, actors, users, cats, orders, reviews, pubs)

	out, err := svc.Categories(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"G", "PG", "R"}, out.FilmRatings)
	assert.Equal(t, []string{"Action", "Comedy"}, out.FilmCategories)
	assert.Equal(t, []string{"article", "thesis"}, out.PublicationTypes)
	assert.Equal(t, []string{"ml", "nlp"}, out.PublicationGroups)
}

func TestCategoriesMongoFailureDegrades(t *testing.T) {
	films, actors, users, cats, orders, reviews, pubs := emptySources()
	films.ratings = []string{"G"}
	cats.names = []string{"Action"}
	pubs.err = errors.New("no reachable servers")

	svc := newTestUnified(films, actors, users, cats, orders, reviews, pubs)

	out, err := svc.Categories(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, out.PublicationTypes)
	assert.Empty(t, out.PublicationGroups)
	assert.Equal(t, []string{"G"}, out.FilmRatings)
}
