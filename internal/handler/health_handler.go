package handler

import "net/http"

// @Summary Mensaje raíz de la API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to SkillStacker API",
		"version": "1.0.0",
	})
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
