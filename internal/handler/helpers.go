package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
)

// debugMode habilita el detalle de errores 5xx en las respuestas.
var debugMode bool

func SetDebug(v bool) { debugMode = v }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError serializa cualquier error como {"detail": "..."} con el
// status que le corresponde a su categoría.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperr.Status(err), map[string]string{
		"detail": apperr.Detail(err, debugMode),
	})
}

// queryInt parsea un query param entero; ausente → def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("Invalid value for " + name)
	}
	return n, nil
}

// pagination valida skip/limit con el tope clásico de 10000.
func pagination(r *http.Request, defLimit int) (skip, limit int, err error) {
	skip, err = queryInt(r, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = queryInt(r, "limit", defLimit)
	if err != nil {
		return 0, 0, err
	}
	if skip < 0 {
		return 0, 0, apperr.Validation("skip must be non-negative")
	}
	if limit < 1 || limit > 10000 {
		return 0, 0, apperr.Validation("limit must be between 1 and 10000")
	}
	return skip, limit, nil
}
