package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublicationDoc es el documento de publicaciones. La colección real varía
// según la instalación (ver config: PubsDB/PubsColl).
type PublicationDoc struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content,omitempty" bson:"content,omitempty"`
	Type      string             `json:"type,omitempty" bson:"type,omitempty"`
	Groups    []string           `json:"groups,omitempty" bson:"groups,omitempty"`
	Author    *string            `json:"author,omitempty" bson:"author,omitempty"`
	CreatedAt *time.Time         `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
