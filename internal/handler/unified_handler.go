package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

// UnifiedHandler agrupa la búsqueda combinada y el CRUD de escritura
// sobre ambos stores.
type UnifiedHandler struct {
	svc     *service.UnifiedService
	films   *service.FilmService
	actors  *service.ActorService
	reviews *service.ReviewService
	pubs    *service.PublicationService
	debug   *repository.PublicationRepository
}

func NewUnifiedHandler(
	svc *service.UnifiedService,
	films *service.FilmService,
	actors *service.ActorService,
	reviews *service.ReviewService,
	pubs *service.PublicationService,
	debug *repository.PublicationRepository,
) *UnifiedHandler {
	return &UnifiedHandler{
		svc:     svc,
		films:   films,
		actors:  actors,
		reviews: reviews,
		pubs:    pubs,
		debug:   debug,
	}
}

// @Summary Búsqueda combinada sobre los dos stores
// @Tags unified
// @Produce json
// @Param q query string true "término de búsqueda"
// @Param category query string false "films|actors|users|publications|reviews"
// @Param skip query int false "offset"
// @Param limit query int false "límite por fuente (default 50, máx 200)"
// @Success 200 {object} service.SearchResult
// @Router /unified/search [get]
func (h *UnifiedHandler) Search(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := searchPagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.Search(r.Context(),
		r.URL.Query().Get("q"),
		r.URL.Query().Get("category"),
		skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// searchPagination usa el tope chico de la búsqueda combinada.
func searchPagination(r *http.Request) (skip, limit int, err error) {
	skip, err = queryInt(r, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = queryInt(r, "limit", 50)
	if err != nil {
		return 0, 0, err
	}
	if skip < 0 {
		return 0, 0, apperr.Validation("skip must be non-negative")
	}
	if limit < 1 || limit > 200 {
		return 0, 0, apperr.Validation("limit must be between 1 and 200")
	}
	return skip, limit, nil
}

// upgrader global para la búsqueda en streaming.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Búsqueda combinada con resultados en streaming (WebSocket)
// @Tags unified
// @Produce json
// @Param q query string true "término de búsqueda"
// @Param category query string false "films|actors|users|publications|reviews"
// @Param skip query int false "offset"
// @Param limit query int false "límite por fuente (default 50, máx 200)"
// @Success 200 {object} map[string]interface{}
// @Router /unified/ws/search [get]
func (h *UnifiedHandler) SearchWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Búsqueda iniciada",
	})

	// Una fuente por frame: el cliente pinta resultados a medida que llegan.
	// Con category, las fuentes restantes igual emiten su frame, vacío.
	sources := []string{"films", "actors", "users", "publications", "reviews"}
	total := 0
	for _, src := range sources {
		if category != "" && category != src {
			conn.WriteJSON(map[string]any{
				"type":   "source",
				"source": src,
				"items":  []any{},
				"count":  0,
			})
			continue
		}

		result, err := h.svc.Search(r.Context(), q, src, skip, limit)
		if err != nil {
			conn.WriteJSON(map[string]any{
				"type":   "error",
				"detail": apperr.Detail(err, debugMode),
			})
			return
		}

		var items any
		switch src {
		case "films":
			items = result.Films
		case "actors":
			items = result.Actors
		case "users":
			items = result.Users
		case "publications":
			items = result.Publications
		case "reviews":
			items = result.Reviews
		}
		total += result.TotalResults
		conn.WriteJSON(map[string]any{
			"type":   "source",
			"source": src,
			"items":  items,
			"count":  result.TotalResults,
		})
	}

	conn.WriteJSON(map[string]any{
		"type":          "done",
		"total_results": total,
	})
}

// @Summary Conteos combinados de ambos stores
// @Tags unified
// @Produce json
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} service.StatsResult
// @Router /unified/stats [get]
func (h *UnifiedHandler) Stats(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"
	stats, err := h.svc.Stats(r.Context(), refresh)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// @Summary Valores de categorización disponibles
// @Tags unified
// @Produce json
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} service.CategoriesResult
// @Router /unified/categories [get]
func (h *UnifiedHandler) Categories(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"
	cats, err := h.svc.Categories(r.Context(), refresh)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// @Summary Estado del servidor Mongo y ubicaciones de publicaciones
// @Tags unified
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /unified/debug/mongodb [get]
func (h *UnifiedHandler) DebugMongo(w http.ResponseWriter, r *http.Request) {
	report, err := h.debug.DebugInfo(r.Context())
	if err != nil {
		writeError(w, apperr.Unavailable("MongoDB unavailable", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "connected",
		"databases": report.Databases,
		"locations": report.Locations,
		"count":     len(report.Locations),
	})
}

// ====== CRUD de películas ======

// @Summary Crear película
// @Tags unified
// @Accept json
// @Produce json
// @Param body body service.CreateFilmData true "Datos de la película"
// @Success 201 {object} models.Film
// @Router /unified/films [post]
func (h *UnifiedHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var req service.CreateFilmData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	film, err := h.films.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, film)
}

// @Summary Obtener película por ID
// @Tags unified
// @Produce json
// @Param id path int true "filmId"
// @Success 200 {object} models.Film
// @Router /unified/films/{id} [get]
func (h *UnifiedHandler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("Invalid film ID"))
		return
	}

	film, err := h.films.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, film)
}

// @Summary Actualizar película (parcial)
// @Tags unified
// @Accept json
// @Produce json
// @Param id path int true "filmId"
// @Param body body service.UpdateFilmData true "Campos a actualizar"
// @Success 200 {object} map[string]string
// @Router /unified/films/{id} [put]
func (h *UnifiedHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("Invalid film ID"))
		return
	}

	var req service.UpdateFilmData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	if err := h.films.Update(r.Context(), id, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Film updated successfully"})
}

// @Summary Borrar película
// @Tags unified
// @Produce json
// @Param id path int true "filmId"
// @Success 200 {object} map[string]string
// @Router /unified/films/{id} [delete]
func (h *UnifiedHandler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("Invalid film ID"))
		return
	}

	if err := h.films.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Film deleted successfully"})
}

// @Summary Crear películas en lote (máx 10)
// @Tags unified
// @Accept json
// @Produce json
// @Param body body []service.CreateFilmData true "Películas"
// @Success 201 {object} map[string]int
// @Router /unified/bulk/films [post]
func (h *UnifiedHandler) CreateFilmsBulk(w http.ResponseWriter, r *http.Request) {
	var req []service.CreateFilmData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	n, err := h.films.CreateBulk(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"created": n})
}

// ====== CRUD de actores ======

// @Summary Crear actor
// @Tags unified
// @Accept json
// @Produce json
// @Param body body service.ActorData true "Datos del actor"
// @Success 201 {object} models.Actor
// @Router /unified/actors [post]
func (h *UnifiedHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req service.ActorData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	actor, err := h.actors.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, actor)
}

// @Summary Obtener actor por ID
// @Tags unified
// @Produce json
// @Param id path int true "actorId"
// @Success 200 {object} models.Actor
// @Router /unified/actors/{id} [get]
func (h *UnifiedHandler) GetActor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("Invalid actor ID"))
		return
	}

	actor, err := h.actors.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actor)
}

// @Summary Actualizar actor (parcial)
// @Tags unified
// @Accept json
// @Produce json
// @Param id path int true "actorId"
// @Param body body service.ActorData true "Campos a actualizar"
// @Success 200 {object} map[string]string
// @Router /unified/actors/{id} [put]
func (h *UnifiedHandler) UpdateActor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("Invalid actor ID"))
		return
	}

	var req service.ActorData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	if err := h.actors.Update(r.Context(), id, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Actor updated successfully"})
}

// @Summary Borrar actor
// @Tags unified
// @Produce json
// @Param id path int true "actorId"
// @Success 200 {object} map[string]string
// @Router /unified/actors/{id} [delete]
func (h *UnifiedHandler) DeleteActor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperr.Validation("Invalid actor ID"))
		return
	}

	if err := h.actors.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Actor deleted successfully"})
}

// ====== CRUD de publicaciones ======

// @Summary Crear publicación
// @Tags unified
// @Accept json
// @Produce json
// @Param body body service.CreatePublicationData true "Datos de la publicación"
// @Success 201 {object} map[string]string
// @Router /unified/publications [post]
func (h *UnifiedHandler) CreatePublication(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePublicationData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	id, err := h.pubs.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// @Summary Obtener publicación por ID
// @Tags unified
// @Produce json
// @Param id path string true "publicationId"
// @Success 200 {object} models.PublicationDoc
// @Router /unified/publications/{id} [get]
func (h *UnifiedHandler) GetPublication(w http.ResponseWriter, r *http.Request) {
	doc, err := h.pubs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// @Summary Actualizar publicación (parcial)
// @Tags unified
// @Accept json
// @Produce json
// @Param id path string true "publicationId"
// @Param body body service.UpdatePublicationData true "Campos a actualizar"
// @Success 200 {object} map[string]string
// @Router /unified/publications/{id} [put]
func (h *UnifiedHandler) UpdatePublication(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePublicationData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	if err := h.pubs.Update(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Publication updated successfully"})
}

// @Summary Borrar publicación
// @Tags unified
// @Produce json
// @Param id path string true "publicationId"
// @Success 200 {object} map[string]string
// @Router /unified/publications/{id} [delete]
func (h *UnifiedHandler) DeletePublication(w http.ResponseWriter, r *http.Request) {
	if err := h.pubs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Publication deleted successfully"})
}

// @Summary Crear publicaciones en lote (máx 20)
// @Tags unified
// @Accept json
// @Produce json
// @Param body body []service.CreatePublicationData true "Publicaciones"
// @Success 201 {object} map[string]interface{}
// @Router /unified/bulk/publications [post]
func (h *UnifiedHandler) CreatePublicationsBulk(w http.ResponseWriter, r *http.Request) {
	var req []service.CreatePublicationData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	ids, err := h.pubs.CreateBulk(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"created": len(ids), "ids": ids})
}

// ====== CRUD de reviews (sin scoping de usuario) ======

// @Summary Crear review
// @Tags unified
// @Accept json
// @Produce json
// @Param body body service.CreateReviewData true "Datos de la review"
// @Success 201 {object} map[string]string
// @Router /unified/reviews [post]
func (h *UnifiedHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req service.CreateReviewData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	id, err := h.reviews.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// @Summary Obtener review por ID
// @Tags unified
// @Produce json
// @Param id path string true "reviewId"
// @Success 200 {object} models.ReviewDoc
// @Router /unified/reviews/{id} [get]
func (h *UnifiedHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviews.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// @Summary Actualizar review (parcial)
// @Tags unified
// @Accept json
// @Produce json
// @Param id path string true "reviewId"
// @Param body body service.UpdateReviewData true "Campos a actualizar"
// @Success 200 {object} map[string]string
// @Router /unified/reviews/{id} [put]
func (h *UnifiedHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateReviewData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	if err := h.reviews.Update(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review updated successfully"})
}

// @Summary Borrar review
// @Tags unified
// @Produce json
// @Param id path string true "reviewId"
// @Success 200 {object} map[string]string
// @Router /unified/reviews/{id} [delete]
func (h *UnifiedHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}

// @Summary Crear reviews en lote (máx 20)
// @Tags unified
// @Accept json
// @Produce json
// @Param body body []service.CreateReviewData true "Reviews"
// @Success 201 {object} map[string]interface{}
// @Router /unified/bulk/reviews [post]
func (h *UnifiedHandler) CreateReviewsBulk(w http.ResponseWriter, r *http.Request) {
	var req []service.CreateReviewData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	ids, err := h.reviews.CreateBulk(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"created": len(ids), "ids": ids})
}
