package handler

import (
	"net/http"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

type PublicationHandler struct {
	svc *service.PublicationService
}

func NewPublicationHandler(s *service.PublicationService) *PublicationHandler {
	return &PublicationHandler{svc: s}
}

// @Summary Listar publicaciones del dataset
// @Tags publications
// @Produce json
// @Param skip query int false "offset"
// @Param limit query int false "límite (default 100, máx 1000)"
// @Param search query string false "búsqueda por título"
// @Param type query string false "tipo exacto"
// @Param group query string false "grupo"
// @Success 200 {object} service.PublicationPage
// @Router /api/v1/publications [get]
func (h *PublicationHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r, 100)
	if err != nil {
		writeError(w, err)
		return
	}
	if limit > 1000 {
		writeError(w, apperr.Validation("limit must be between 1 and 1000"))
		return
	}

	page, err := h.svc.List(r.Context(), publicationFilter(r, skip, limit))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// publicationFilter arma el filtro del repositorio desde los query params.
func publicationFilter(r *http.Request, skip, limit int) repository.PublicationFilter {
	q := r.URL.Query()
	return repository.PublicationFilter{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Group:  q.Get("group"),
		Skip:   skip,
		Limit:  limit,
	}
}

// @Summary Total de publicaciones del dataset
// @Tags publications
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /api/v1/publications/stats [get]
func (h *PublicationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total_publications": total})
}

// @Summary Búsqueda avanzada sobre el dataset
// @Tags publications
// @Produce json
// @Param q query string true "término de búsqueda"
// @Param limit query int false "límite (default 10)"
// @Success 200 {object} service.SearchResultPage
// @Router /api/v1/publications/search [get]
func (h *PublicationHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, apperr.Validation("Query parameter q is required"))
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		writeError(w, err)
		return
	}
	if limit < 1 || limit > 100 {
		writeError(w, apperr.Validation("limit must be between 1 and 100"))
		return
	}

	page, err := h.svc.SearchAdvanced(r.Context(), q, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
