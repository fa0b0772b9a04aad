package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

// ProductHandler expone el catálogo bajo vocabulario de productos.
// Comparte el servicio de films: un producto ES un film del esquema.
type ProductHandler struct {
	svc *service.FilmService
}

func NewProductHandler(s *service.FilmService) *ProductHandler { return &ProductHandler{svc: s} }

// @Summary Listar productos
// @Tags products
// @Produce json
// @Param skip query int false "offset"
// @Param limit query int false "límite (default 100)"
// @Param search query string false "búsqueda por título"
// @Param rating query string false "rating exacto"
// @Success 200 {array} models.Film
// @Router /api/v1/products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r, 100)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.svc.List(r.Context(), repository.FilmFilter{
		Search: r.URL.Query().Get("search"),
		Rating: r.URL.Query().Get("rating"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// @Summary Todos los productos sin paginado
// @Tags products
// @Produce json
// @Success 200 {array} models.Film
// @Router /api/v1/products/all [get]
func (h *ProductHandler) All(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// @Summary Conteos del catálogo de productos
// @Tags products
// @Produce json
// @Success 200 {object} service.ProductStats
// @Router /api/v1/products/stats [get]
func (h *ProductHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.ProductStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// @Summary Ratings disponibles como categorías de producto
// @Tags products
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/products/categories [get]
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.svc.Ratings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": ratings})
}

// @Summary Obtener un producto por ID
// @Tags products
// @Produce json
// @Param id path int true "productId"
// @Success 200 {object} models.Film
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, apperr.Validation("Invalid product ID"))
		return
	}

	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
