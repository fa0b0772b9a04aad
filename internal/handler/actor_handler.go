package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

type ActorHandler struct {
	svc *service.ActorService
}

func NewActorHandler(s *service.ActorService) *ActorHandler { return &ActorHandler{svc: s} }

// @Summary Listar actores con búsqueda por nombre
// @Tags actors
// @Produce json
// @Param skip query int false "offset"
// @Param limit query int false "límite (default 100)"
// @Param search query string false "búsqueda por nombre o apellido"
// @Success 200 {array} models.Actor
// @Router /api/v1/actors [get]
func (h *ActorHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r, 100)
	if err != nil {
		writeError(w, err)
		return
	}

	actors, err := h.svc.List(r.Context(), r.URL.Query().Get("search"), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actors)
}

// @Summary Todos los actores sin paginado
// @Tags actors
// @Produce json
// @Success 200 {array} models.Actor
// @Router /api/v1/actors/all [get]
func (h *ActorHandler) All(w http.ResponseWriter, r *http.Request) {
	actors, err := h.svc.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actors)
}

// @Summary Total de actores
// @Tags actors
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /api/v1/actors/stats [get]
func (h *ActorHandler) Stats(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total_actors": n})
}

// @Summary Obtener un actor por ID
// @Tags actors
// @Produce json
// @Param id path int true "actorId"
// @Success 200 {object} models.Actor
// @Router /api/v1/actors/{id} [get]
func (h *ActorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("Invalid actor ID"))
		return
	}

	actor, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actor)
}
