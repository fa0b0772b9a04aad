package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganeshdatta23/skillstacker/internal/cache"
	"github.com/ganeshdatta23/skillstacker/internal/models"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

// Fakes mínimos para armar un UnifiedService en tests de handler.
type wsFilms struct {
	gotSkip int
}

func (f *wsFilms) SearchByTitle(ctx context.Context, term string, skip, limit int) ([]models.Film, error) {
	f.gotSkip = skip
	return []models.Film{{FilmID: 1, Title: "Matrix"}}, nil
}
func (f *wsFilms) Count(ctx context.Context) (int64, error) { return 1, nil }
func (f *wsFilms) DistinctRatings(ctx context.Context) ([]string, error) {
	return nil, nil
}

type wsActors struct{}

func (wsActors) List(ctx context.Context, search string, skip, limit int) ([]models.Actor, error) {
	return nil, nil
}
func (wsActors) Count(ctx context.Context) (int64, error) { return 0, nil }

type wsUsers struct{}

func (wsUsers) SearchByNameOrEmail(ctx context.Context, term string, skip, limit int) ([]models.User, error) {
	return nil, nil
}
func (wsUsers) Count(ctx context.Context) (int64, error) { return 0, nil }

type wsCategories struct{}

func (wsCategories) Names(ctx context.Context) ([]string, error) { return nil, nil }
func (wsCategories) Count(ctx context.Context) (int64, error)    { return 0, nil }

type wsOrders struct{}

func (wsOrders) CountRentals(ctx context.Context) (int64, error)  { return 0, nil }
func (wsOrders) CountPayments(ctx context.Context) (int64, error) { return 0, nil }

type wsReviews struct {
	called bool
}

func (r *wsReviews) Search(ctx context.Context, term string, skip, limit int) ([]models.ReviewDoc, error) {
	r.called = true
	return nil, nil
}
func (r *wsReviews) Count(ctx context.Context) (int64, error) { return 0, nil }

type wsPubs struct{}

func (wsPubs) SearchProbe(ctx context.Context, term string, skip, limit int) ([]models.PublicationDoc, error) {
	return nil, nil
}
func (wsPubs) CountProbe(ctx context.Context) (int64, error) { return 0, nil }
func (wsPubs) DistinctTypesAndGroups(ctx context.Context) ([]string, []string, error) {
	return nil, nil, nil
}

func dialSearchWS(t *testing.T, h *UnifiedHandler, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.SearchWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSearchWSHonorsCategoryAndSkip(t *testing.T) {
	films := &wsFilms{}
	reviews := &wsReviews{}
	svc := service.NewUnifiedService(films, wsActors{}, wsUsers{}, wsCategories{}, wsOrders{}, reviews, wsPubs{}, new(cache.Cache))
	h := NewUnifiedHandler(svc, nil, nil, nil, nil, nil)

	conn := dialSearchWS(t, h, "?q=matrix&category=films&skip=3")

	var frame map[string]any
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "start", frame["type"])

	// Las cinco fuentes emiten su frame en orden, vacío fuera de la categoría.
	wantOrder := []string{"films", "actors", "users", "publications", "reviews"}
	counts := map[string]float64{}
	for _, want := range wantOrder {
		require.NoError(t, conn.ReadJSON(&frame))
		require.Equal(t, "source", frame["type"])
		require.Equal(t, want, frame["source"])
		counts[want] = frame["count"].(float64)
	}
	assert.Equal(t, float64(1), counts["films"])
	assert.Equal(t, float64(0), counts["reviews"])

	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "done", frame["type"])
	assert.Equal(t, float64(1), frame["total_results"])

	assert.Equal(t, 3, films.gotSkip)
	assert.False(t, reviews.called, "una fuente fuera de la categoría no debería consultarse")
}

func TestSearchWSAllSources(t *testing.T) {
	films := &wsFilms{}
	reviews := &wsReviews{}
	svc := service.NewUnifiedService(films, wsActors{}, wsUsers{}, wsCategories{}, wsOrders{}, reviews, wsPubs{}, new(cache.Cache))
	h := NewUnifiedHandler(svc, nil, nil, nil, nil, nil)

	conn := dialSearchWS(t, h, "?q=matrix")

	var frame map[string]any
	require.NoError(t, conn.ReadJSON(&frame))
	require.Equal(t, "start", frame["type"])

	for i := 0; i < 5; i++ {
		require.NoError(t, conn.ReadJSON(&frame))
		require.Equal(t, "source", frame["type"])
	}

	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "done", frame["type"])
	assert.True(t, reviews.called)
}
