package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler(s *service.ReviewService) *ReviewHandler { return &ReviewHandler{svc: s} }

// @Summary Reviews de un producto
// @Tags reviews
// @Produce json
// @Param id path int true "productId"
// @Param skip query int false "offset"
// @Param limit query int false "límite (default 10)"
// @Success 200 {array} models.ReviewDoc
// @Router /api/v1/reviews/product/{id} [get]
func (h *ReviewHandler) ByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || productID <= 0 {
		writeError(w, apperr.Validation("Invalid product ID"))
		return
	}
	skip, limit, err := pagination(r, 10)
	if err != nil {
		writeError(w, err)
		return
	}

	reviews, err := h.svc.ByProduct(r.Context(), productID, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// @Summary Resumen de reviews de un producto
// @Tags reviews
// @Produce json
// @Param id path int true "productId"
// @Success 200 {object} models.ReviewSummary
// @Router /api/v1/reviews/product/{id}/summary [get]
func (h *ReviewHandler) Summary(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || productID <= 0 {
		writeError(w, apperr.Validation("Invalid product ID"))
		return
	}

	sum, err := h.svc.Summary(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// @Summary Obtener una review por ID
// @Tags reviews
// @Produce json
// @Param id path string true "reviewId"
// @Success 200 {object} models.ReviewDoc
// @Router /api/v1/reviews/{id} [get]
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	review, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// @Summary Crear una review (autenticado)
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.CreateReviewData true "Datos de la review"
// @Success 201 {object} map[string]string
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())
	if u == nil {
		writeError(w, apperr.Auth("Not authenticated"))
		return
	}

	var req service.CreateReviewData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	id, err := h.svc.CreateForUser(r.Context(), u.CustomerID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// @Summary Actualizar una review propia (autenticado)
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "reviewId"
// @Param body body service.UpdateReviewData true "Campos a actualizar"
// @Success 200 {object} map[string]string
// @Router /api/v1/reviews/{id} [put]
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())
	if u == nil {
		writeError(w, apperr.Auth("Not authenticated"))
		return
	}

	var req service.UpdateReviewData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	if err := h.svc.UpdateForUser(r.Context(), chi.URLParam(r, "id"), u.CustomerID, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review updated successfully"})
}

// @Summary Borrar una review propia (autenticado)
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Param id path string true "reviewId"
// @Success 200 {object} map[string]string
// @Router /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())
	if u == nil {
		writeError(w, apperr.Auth("Not authenticated"))
		return
	}

	if err := h.svc.DeleteForUser(r.Context(), chi.URLParam(r, "id"), u.CustomerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
