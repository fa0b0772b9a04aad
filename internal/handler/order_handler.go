package handler

import (
	"net/http"

	"github.com/ganeshdatta23/skillstacker/internal/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(s *service.OrderService) *OrderHandler { return &OrderHandler{svc: s} }

// @Summary Listar órdenes recientes
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Router /api/v1/orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// @Summary Estadísticas de órdenes
// @Tags orders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/orders/stats [get]
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	// Las métricas de revenue salen de un pipeline aparte, todavía no implementado.
	writeJSON(w, http.StatusOK, map[string]any{
		"total_orders":  0,
		"total_revenue": 0,
		"message":       "Order statistics not yet implemented",
	})
}
