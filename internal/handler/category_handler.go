package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(s *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: s}
}

// @Summary Listar categorías
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// @Summary Total de categorías
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /api/v1/categories/stats [get]
func (h *CategoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total_categories": n})
}

// @Summary Obtener una categoría por ID
// @Tags categories
// @Produce json
// @Param id path int true "categoryId"
// @Success 200 {object} models.Category
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("Invalid category ID"))
		return
	}

	cat, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}
