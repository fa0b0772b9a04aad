package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewDoc es el documento de la colección `reviews` (skillstacker).
type ReviewDoc struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID    *int               `json:"product_id" bson:"product_id"`
	UserID       *int               `json:"user_id" bson:"user_id"`
	Rating       int                `json:"rating" bson:"rating"`
	Title        string             `json:"title" bson:"title"`
	Content      string             `json:"content" bson:"content"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
	HelpfulCount int                `json:"helpful_count" bson:"helpful_count"`
}

// ReviewSummary es el resultado del pipeline de agregación por producto.
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating" bson:"average_rating"`
	TotalReviews  int     `json:"total_reviews" bson:"total_reviews"`
}
