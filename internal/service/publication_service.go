package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/models"
	"github.com/ganeshdatta23/skillstacker/internal/repository"
)

type PublicationService struct {
	pubs *repository.PublicationRepository
}

func NewPublicationService(pubs *repository.PublicationRepository) *PublicationService {
	return &PublicationService{pubs: pubs}
}

// PublicationPage es la respuesta del listado paginado.
type PublicationPage struct {
	Total        int64             `json:"total"`
	Skip         int               `json:"skip"`
	Limit        int               `json:"limit"`
	Publications []publicationItem `json:"publications"`
}

type publicationItem struct {
	ID string `json:"_id"`
	models.PublicationDoc
}

func toPublicationItems(docs []models.PublicationDoc) []publicationItem {
	out := make([]publicationItem, 0, len(docs))
	for _, d := range docs {
		out = append(out, publicationItem{ID: d.ID.Hex(), PublicationDoc: d})
	}
	return out
}

func (s *PublicationService) List(ctx context.Context, f repository.PublicationFilter) (*PublicationPage, error) {
	total, docs, err := s.pubs.List(ctx, f)
	if err != nil {
		return nil, mapMongoErr("Error fetching publications", err)
	}
	return &PublicationPage{
		Total:        total,
		Skip:         f.Skip,
		Limit:        f.Limit,
		Publications: toPublicationItems(docs),
	}, nil
}

func (s *PublicationService) Stats(ctx context.Context) (int64, error) {
	total, err := s.pubs.CountDataset(ctx)
	if err != nil {
		return 0, mapMongoErr("Error fetching stats", err)
	}
	return total, nil
}

// SearchResultPage es la respuesta de la búsqueda avanzada.
type SearchResultPage struct {
	Query   string            `json:"query"`
	Results []publicationItem `json:"results"`
	Count   int               `json:"count"`
}

func (s *PublicationService) SearchAdvanced(ctx context.Context, q string, limit int) (*SearchResultPage, error) {
	docs, err := s.pubs.SearchAdvanced(ctx, q, limit)
	if err != nil {
		return nil, mapMongoErr("Error searching publications", err)
	}
	items := toPublicationItems(docs)
	return &SearchResultPage{Query: q, Results: items, Count: len(items)}, nil
}

type CreatePublicationData struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Type    string   `json:"type"`
	Groups  []string `json:"groups"`
	Author  *string  `json:"author"`
}

func (s *PublicationService) Create(ctx context.Context, data CreatePublicationData) (string, error) {
	if data.Title == "" || data.Content == "" {
		return "", apperr.Validation("title and content are required")
	}
	if data.Type == "" {
		data.Type = "article"
	}
	if data.Groups == nil {
		data.Groups = []string{}
	}

	now := time.Now().UTC()
	doc := &models.PublicationDoc{
		Title:     data.Title,
		Content:   data.Content,
		Type:      data.Type,
		Groups:    data.Groups,
		Author:    data.Author,
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	id, err := s.pubs.Insert(ctx, doc)
	if err != nil {
		return "", mapMongoErr("Failed to create publication", err)
	}
	return id.Hex(), nil
}

func (s *PublicationService) Get(ctx context.Context, idHex string) (*models.PublicationDoc, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperr.Validation("Invalid publication ID")
	}

	doc, err := s.pubs.FindByID(ctx, id)
	if err != nil {
		return nil, mapMongoErr("Failed to get publication", err)
	}
	if doc == nil {
		return nil, apperr.NotFound("Publication not found")
	}
	return doc, nil
}

type UpdatePublicationData struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Type    string   `json:"type"`
	Groups  []string `json:"groups"`
	Author  string   `json:"author"`
}

// Update aplica un parche parcial con la misma semántica falsy-skip del resto.
func (s *PublicationService) Update(ctx context.Context, idHex string, data UpdatePublicationData) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperr.Validation("Invalid publication ID")
	}

	update := bson.M{}
	if data.Title != "" {
		update["title"] = data.Title
	}
	if data.Content != "" {
		update["content"] = data.Content
	}
	if data.Type != "" {
		update["type"] = data.Type
	}
	if len(data.Groups) > 0 {
		update["groups"] = data.Groups
	}
	if data.Author != "" {
		update["author"] = data.Author
	}

	if err := s.pubs.UpdateByID(ctx, id, update); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("Publication not found")
		}
		return mapMongoErr("Failed to update publication", err)
	}
	return nil
}

func (s *PublicationService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return apperr.Validation("Invalid publication ID")
	}

	if err := s.pubs.DeleteByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("Publication not found")
		}
		return mapMongoErr("Failed to delete publication", err)
	}
	return nil
}

// CreateBulk inserta hasta 20 publicaciones.
func (s *PublicationService) CreateBulk(ctx context.Context, items []CreatePublicationData) ([]string, error) {
	if len(items) > 20 {
		items = items[:20]
	}

	now := time.Now().UTC()
	docs := make([]models.PublicationDoc, 0, len(items))
	for _, data := range items {
		title := data.Title
		if title == "" {
			title = "Untitled Article"
		}
		typ := data.Type
		if typ == "" {
			typ = "article"
		}
		groups := data.Groups
		if groups == nil {
			groups = []string{}
		}
		docs = append(docs, models.PublicationDoc{
			Title:     title,
			Content:   data.Content,
			Type:      typ,
			Groups:    groups,
			Author:    data.Author,
			CreatedAt: &now,
			UpdatedAt: &now,
		})
	}

	ids, err := s.pubs.InsertMany(ctx, docs)
	if err != nil {
		return nil, mapMongoErr("Failed to bulk create publications", err)
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out, nil
}
