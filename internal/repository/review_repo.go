package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ganeshdatta23/skillstacker/internal/db"
	"github.com/ganeshdatta23/skillstacker/internal/models"
)

type ReviewRepository struct {
	mongo *db.Mongo
}

func NewReviewRepository(m *db.Mongo) *ReviewRepository {
	return &ReviewRepository{mongo: m}
}

func (r *ReviewRepository) col(ctx context.Context) (*mongo.Collection, error) {
	database, err := r.mongo.Database(ctx)
	if err != nil {
		return nil, err
	}
	return database.Collection("reviews"), nil
}

func (r *ReviewRepository) ByProduct(ctx context.Context, productID, skip, limit int) ([]models.ReviewDoc, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cur, err := col.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ReviewDoc
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary calcula promedio y total de reviews de un producto vía pipeline.
// Devuelve nil si el producto no tiene reviews.
func (r *ReviewRepository) Summary(ctx context.Context, productID int) (*models.ReviewSummary, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product_id": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$product_id",
			"average_rating": bson.M{"$avg": "$rating"},
			"total_reviews":  bson.M{"$sum": 1},
		}}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ReviewSummary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Search hace substring match case-insensitive sobre title y content.
func (r *ReviewRepository) Search(ctx context.Context, term string, skip, limit int) ([]models.ReviewDoc, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"title": bson.M{"$regex": term, "$options": "i"}},
		bson.M{"content": bson.M{"$regex": term, "$options": "i"}},
	}}
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ReviewDoc
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ReviewDoc, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	var doc models.ReviewDoc
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ReviewRepository) FindByIDAndUser(ctx context.Context, id primitive.ObjectID, userID int) (*models.ReviewDoc, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	var doc models.ReviewDoc
	err = col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ReviewRepository) Insert(ctx context.Context, doc *models.ReviewDoc) (primitive.ObjectID, error) {
	col, err := r.col(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *ReviewRepository) InsertMany(ctx context.Context, docs []models.ReviewDoc) ([]primitive.ObjectID, error) {
	col, err := r.col(ctx)
	if err != nil {
		return nil, err
	}

	raw := make([]any, len(docs))
	for i := range docs {
		raw[i] = docs[i]
	}
	res, err := col.InsertMany(ctx, raw)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

// UpdateByID aplica un $set parcial. Devuelve mongo.ErrNoDocuments si no hay match.
func (r *ReviewRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	col, err := r.col(ctx)
	if err != nil {
		return err
	}

	update["updated_at"] = time.Now().UTC()
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ReviewRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	col, err := r.col(ctx)
	if err != nil {
		return err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ReviewRepository) DeleteByIDAndUser(ctx context.Context, id primitive.ObjectID, userID int) error {
	col, err := r.col(ctx)
	if err != nil {
		return err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	col, err := r.col(ctx)
	if err != nil {
		return 0, err
	}
	return col.CountDocuments(ctx, bson.M{})
}
