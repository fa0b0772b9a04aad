package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

type FilmHandler struct {
	svc *service.FilmService
}

func NewFilmHandler(s *service.FilmService) *FilmHandler { return &FilmHandler{svc: s} }

// @Summary Listar películas con filtros y paginado
// @Tags films
// @Produce json
// @Param skip query int false "offset"
// @Param limit query int false "límite (default 1000, máx 10000)"
// @Param search query string false "búsqueda por título o descripción"
// @Param rating query string false "rating exacto (G, PG, ...)"
// @Param min_year query int false "año desde"
// @Param max_year query int false "año hasta"
// @Success 200 {array} models.Film
// @Router /api/v1/films [get]
func (h *FilmHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r, 1000)
	if err != nil {
		writeError(w, err)
		return
	}
	minYear, err := queryInt(r, "min_year", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	maxYear, err := queryInt(r, "max_year", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	films, err := h.svc.List(r.Context(), repository.FilmFilter{
		Search:  r.URL.Query().Get("search"),
		Rating:  r.URL.Query().Get("rating"),
		MinYear: minYear,
		MaxYear: maxYear,
		Skip:    skip,
		Limit:   limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, films)
}

// @Summary Todas las películas sin paginado
// @Tags films
// @Produce json
// @Success 200 {array} models.Film
// @Router /api/v1/films/all [get]
func (h *FilmHandler) All(w http.ResponseWriter, r *http.Request) {
	films, err := h.svc.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, films)
}

// @Summary Estadísticas del catálogo de películas
// @Tags films
// @Produce json
// @Success 200 {object} service.FilmStats
// @Router /api/v1/films/stats [get]
func (h *FilmHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// @Summary Obtener una película por ID
// @Tags films
// @Produce json
// @Param id path int true "filmId"
// @Success 200 {object} models.Film
// @Router /api/v1/films/{id} [get]
func (h *FilmHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("Invalid film ID"))
		return
	}

	film, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, film)
}
