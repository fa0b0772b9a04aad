package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ganeshdatta23/skillstacker/internal/cache"
	"github.com/ganeshdatta23/skillstacker/internal/config"
	"github.com/ganeshdatta23/skillstacker/internal/db"
	"github.com/ganeshdatta23/skillstacker/internal/handler"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

// @title SkillStacker API
// @version 1.0
// @description Backend combinado sobre PostgreSQL (catálogo sakila) y MongoDB (publicaciones y reviews)
// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	handler.SetDebug(cfg.Debug)

	// Postgres con migración automática
	gdb, err := db.OpenPostgres(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("[main] no se pudo abrir Postgres: %v", err)
	}
	defer db.ClosePostgres(gdb)

	// Mongo es lazy: la primera query abre la conexión
	mongo := db.NewMongo(cfg)
	defer mongo.Close(context.Background())

	// Redis (best-effort)
	rcache := cache.New(cfg)

	// repos
	userRepo := repository.NewUserRepository(gdb)
	filmRepo := repository.NewFilmRepository(gdb)
	actorRepo := repository.NewActorRepository(gdb)
	categoryRepo := repository.NewCategoryRepository(gdb)
	orderRepo := repository.NewOrderRepository(gdb)
	reviewRepo := repository.NewReviewRepository(mongo)
	pubRepo := repository.NewPublicationRepository(mongo, cfg)

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpireMinutes)
	filmSvc := service.NewFilmService(filmRepo)
	actorSvc := service.NewActorService(actorRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	orderSvc := service.NewOrderService(orderRepo)
	reviewSvc := service.NewReviewService(reviewRepo)
	pubSvc := service.NewPublicationService(pubRepo)
	unifiedSvc := service.NewUnifiedService(
		filmRepo, actorRepo, userRepo, categoryRepo, orderRepo, reviewRepo, pubRepo, rcache)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(authSvc)
	filmH := handler.NewFilmHandler(filmSvc)
	productH := handler.NewProductHandler(filmSvc)
	actorH := handler.NewActorHandler(actorSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	orderH := handler.NewOrderHandler(orderSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	pubH := handler.NewPublicationHandler(pubSvc)
	unifiedH := handler.NewUnifiedHandler(unifiedSvc, filmSvc, actorSvc, reviewSvc, pubSvc, pubRepo)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/", handler.Root)
	r.Get("/health", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)

		r.Get("/films", filmH.List)
		r.Get("/films/all", filmH.All)
		r.Get("/films/stats", filmH.Stats)
		r.Get("/films/{id}", filmH.Get)

		r.Get("/products", productH.List)
		r.Get("/products/all", productH.All)
		r.Get("/products/stats", productH.Stats)
		r.Get("/products/categories", productH.Categories)
		r.Get("/products/{id}", productH.Get)

		r.Get("/actors", actorH.List)
		r.Get("/actors/all", actorH.All)
		r.Get("/actors/stats", actorH.Stats)
		r.Get("/actors/{id}", actorH.Get)

		r.Get("/categories", categoryH.List)
		r.Get("/categories/all", categoryH.List)
		r.Get("/categories/stats", categoryH.Stats)
		r.Get("/categories/{id}", categoryH.Get)

		r.Get("/orders", orderH.List)
		r.Get("/orders/stats", orderH.Stats)

		r.Get("/publications", pubH.List)
		r.Get("/publications/stats", pubH.Stats)
		r.Get("/publications/search", pubH.Search)

		r.Get("/reviews/product/{id}", reviewH.ByProduct)
		r.Get("/reviews/product/{id}/summary", reviewH.Summary)
		r.Get("/reviews/{id}", reviewH.Get)

		// ===========================
		// Rutas protegidas con JWT
		// ===========================
		r.Group(func(r chi.Router) {
			r.Use(handler.Auth(authSvc))

			r.Get("/auth/me", authH.Me)

			r.Post("/reviews", reviewH.Create)
			r.Put("/reviews/{id}", reviewH.Update)
			r.Delete("/reviews/{id}", reviewH.Delete)

			// ---- Endpoints solo ADMIN ----
			r.Group(func(r chi.Router) {
				r.Use(handler.AdminOnly())

				r.Get("/users", userH.List)
				r.Post("/users", userH.Create)
				r.Get("/users/{id}", userH.Get)
			})
		})
	})

	// ============================
	// Búsqueda combinada y CRUD
	// ============================
	r.Route("/unified", func(r chi.Router) {
		r.Get("/search", unifiedH.Search)
		r.Get("/ws/search", unifiedH.SearchWS)
		r.Get("/stats", unifiedH.Stats)
		r.Get("/categories", unifiedH.Categories)
		r.Get("/debug/mongodb", unifiedH.DebugMongo)

		r.Post("/films", unifiedH.CreateFilm)
		r.Get("/films/{id}", unifiedH.GetFilm)
		r.Put("/films/{id}", unifiedH.UpdateFilm)
		r.Delete("/films/{id}", unifiedH.DeleteFilm)

		r.Post("/actors", unifiedH.CreateActor)
		r.Get("/actors/{id}", unifiedH.GetActor)
		r.Put("/actors/{id}", unifiedH.UpdateActor)
		r.Delete("/actors/{id}", unifiedH.DeleteActor)

		r.Post("/publications", unifiedH.CreatePublication)
		r.Get("/publications/{id}", unifiedH.GetPublication)
		r.Put("/publications/{id}", unifiedH.UpdatePublication)
		r.Delete("/publications/{id}", unifiedH.DeletePublication)

		r.Post("/reviews", unifiedH.CreateReview)
		r.Get("/reviews/{id}", unifiedH.GetReview)
		r.Put("/reviews/{id}", unifiedH.UpdateReview)
		r.Delete("/reviews/{id}", unifiedH.DeleteReview)

		r.Post("/bulk/films", unifiedH.CreateFilmsBulk)
		r.Post("/bulk/publications", unifiedH.CreatePublicationsBulk)
		r.Post("/bulk/reviews", unifiedH.CreateReviewsBulk)
	})

	addr := ":" + cfg.HTTPPort
	log.Printf("[main] API escuchando en %s (env=%s)\n", addr, cfg.Environment)
	log.Fatal(http.ListenAndServe(addr, r))
}
