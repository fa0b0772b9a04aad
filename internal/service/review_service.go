package service

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/db"
	"github.com/ganeshdatta23/skillstacker/internal/models"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
)

type ReviewService struct {
	reviews *repository.ReviewRepository
}

func NewReviewService(reviews *repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// mapMongoErr traduce errores de Mongo a la taxonomía: conexión caída → 503,
// cualquier otra cosa → 500.
func mapMongoErr(msg string, err error) error {
	if db.IsUnavailable(err) {
		return apperr.Unavailable("MongoDB unavailable", err)
	}
	return apperr.Store(msg, err)
}

// ByProduct lista las reviews de un producto. Una caída del document store
// degrada a lista vacía en vez de romper el endpoint.
func (s *ReviewService) ByProduct(ctx context.Context, productID, skip, limit int) ([]models.ReviewDoc, error) {
	docs, err := s.reviews.ByProduct(ctx, productID, skip, limit)
	if err != nil {
		log.Printf("[reviews] error listando producto %d: %v\n", productID, err)
		return []models.ReviewDoc{}, nil
	}
	if docs == nil {
		docs = []models.ReviewDoc{}
	}
	return docs, nil
}

// Summary devuelve promedio y total; sin reviews (o sin Mongo) devuelve ceros.
func (s *ReviewService) Summary(ctx context.Context, productID int) (*models.ReviewSummary, error) {
	sum, err := s.reviews.Summary(ctx, productID)
	if err != nil {
		log.Printf("[reviews] error en summary de producto %d: %v\n", productID, err)
		return &models.ReviewSummary{}, nil
	}
	if sum == nil {
		return &models.ReviewSummary{}, nil
	}
	return sum, nil
}

type CreateReviewData struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
	ProductID *int   `json:"product_id"`
	UserID    *int   `json:"user_id"`
}

func (s *ReviewService) Create(ctx context.Context, data CreateReviewData) (string, error) {
	if data.Title == "" || data.Content == "" {
		return "", apperr.Validation("title and content are required")
	}
	if data.Rating < 1 || data.Rating > 5 {
		return "", apperr.Validation("rating must be between 1 and 5")
	}

	now := time.Now().UTC()
	doc := &models.ReviewDoc{
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Rating:    data.Rating,
		Title:     data.Title,
		Content:   data.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.reviews.Insert(ctx, doc)
	if err != nil {
		return "", mapMongoErr("Failed to create review", err)
	}
	return id.Hex(), nil
}

// CreateForUser es el alta autenticada: la review queda ligada al caller.
func (s *ReviewService) CreateForUser(ctx context.Context, userID int, data CreateReviewData) (string, error) {
	if data.ProductID == nil || *data.ProductID <= 0 {
		return "", apperr.Validation("product_id must be positive")
	}
	data.UserID = &userID
	return s.Create(ctx, data)
}

func (s *ReviewService) Get(ctx context.Context, idHex string) (*models.ReviewDoc, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperr.Validation("Invalid review ID")
	}

	doc, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, mapMongoErr("Failed to get review", err)
	}
	if doc == nil {
		return nil, apperr.NotFound("Review not found")
	}
	return doc, nil
}

type UpdateReviewData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

func (d UpdateReviewData) setFields() (bson.M, error) {
	if d.Rating != 0 && (d.Rating < 1 || d.Rating > 5) {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}
	update := bson.M{}
	if d.Title != "" {
		update["title"] = d.Title
	}
	if d.Content != "" {
		update["content"] = d.Content
	}
	if d.Rating != 0 {
		update["rating"] = d.Rating
	}
	return update, nil
}

// Update aplica un parche parcial; los campos vacíos se saltean.
func (s *ReviewService) Update(ctx context.Context, idHex string, data UpdateReviewData) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperr.Validation("Invalid review ID")
	}
	update, err := data.setFields()
	if err != nil {
		return err
	}

	if err := s.reviews.UpdateByID(ctx, id, update); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("Review not found")
		}
		return mapMongoErr("Failed to update review", err)
	}
	return nil
}

// UpdateForUser solo toca reviews del caller; ajenas o inexistentes → 404.
func (s *ReviewService) UpdateForUser(ctx context.Context, idHex string, userID int, data UpdateReviewData) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperr.Validation("Invalid review ID")
	}
	update, err := data.setFields()
	if err != nil {
		return err
	}

	owned, err := s.reviews.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return mapMongoErr("Failed to update review", err)
	}
	if owned == nil {
		return apperr.NotFound("Review not found")
	}

	if err := s.reviews.UpdateByID(ctx, id, update); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("Review not found")
		}
		return mapMongoErr("Failed to update review", err)
	}
	return nil
}

func (s *ReviewService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperr.Validation("Invalid review ID")
	}

	if err := s.reviews.DeleteByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("Review not found")
		}
		return mapMongoErr("Failed to delete review", err)
	}
	return nil
}

func (s *ReviewService) DeleteForUser(ctx context.Context, idHex string, userID int) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperr.Validation("Invalid review ID")
	}

	if err := s.reviews.DeleteByIDAndUser(ctx, id, userID); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("Review not found")
		}
		return mapMongoErr("Failed to delete review", err)
	}
	return nil
}

// CreateBulk inserta hasta 20 reviews; el rating se recorta al rango [1,5].
func (s *ReviewService) CreateBulk(ctx context.Context, items []CreateReviewData) ([]string, error) {
	if len(items) > 20 {
		items = items[:20]
	}

	now := time.Now().UTC()
	docs := make([]models.ReviewDoc, 0, len(items))
	for _, data := range items {
		title := data.Title
		if title == "" {
			title = "Untitled Review"
		}
		rating := data.Rating
		if rating == 0 {
			rating = 3
		}
		if rating < 1 {
			rating = 1
		}
		if rating > 5 {
			rating = 5
		}
		docs = append(docs, models.ReviewDoc{
			Title:     title,
			Content:   data.Content,
			Rating:    rating,
			ProductID: data.ProductID,
			UserID:    data.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	ids, err := s.reviews.InsertMany(ctx, docs)
	if err != nil {
		return nil, mapMongoErr("Failed to bulk create reviews", err)
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out, nil
}
