package repository

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ganeshdatta23/skillstacker/internal/config"
	"github.com/ganeshdatta23/skillstacker/internal/db"
	"github.com/ganeshdatta23/skillstacker/internal/models"
)

// PublicationRepository trabaja sobre dos ubicaciones configuradas: la
// colección de la app (<MongoDB>.publications, donde escribe el CRUD) y el
// dataset histórico (PubsDB.PubsColl). El escaneo de todas las bases
// buscando colecciones "publication" queda detrás de ProbeFallback porque
// un resultado vacío es indistinguible de una ubicación equivocada.
type PublicationRepository struct {
	mongo *db.Mongo
	cfg   *config.Config
}

func NewPublicationRepository(m *db.Mongo, cfg *config.Config) *PublicationRepository {
	return &PublicationRepository{mongo: m, cfg: cfg}
}

func (r *PublicationRepository) appCol(ctx context.Context) (*mongo.Collection, error) {
	client, err := r.mongo.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(r.cfg.MongoDB).Collection("publications"), nil
}

func (r *PublicationRepository) datasetCol(ctx context.Context) (*mongo.Collection, error) {
	client, err := r.mongo.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(r.cfg.PubsDB).Collection(r.cfg.PubsColl), nil
}

type PublicationFilter struct {
	Search string
	Type   string
	Group  string
	Skip   int
	Limit  int
}

// List consulta el dataset con filtros y devuelve total + página.
func (r *PublicationRepository) List(ctx context.Context, f PublicationFilter) (int64, []models.PublicationDoc, error) {
	col, err := r.datasetCol(ctx)
	if err != nil {
		return 0, nil, err
	}

	filter := bson.M{}
	if f.Search != "" {
		filter["title"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Group != "" {
		filter["groups"] = bson.M{"$in": bson.A{f.Group}}
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, nil, err
	}

	opts := options.Find().SetSkip(int64(f.Skip)).SetLimit(int64(f.Limit))
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return 0, nil, err
	}
	defer cur.Close(ctx)

	var out []models.PublicationDoc
	if err := cur.All(ctx, &out); err != nil {
		return 0, nil, err
	}
	return total, out, nil
}

// SearchAdvanced busca en título, título relacionado, groups y subgroups.
func (r *PublicationRepository) SearchAdvanced(ctx context.Context, q string, limit int) ([]models.PublicationDoc, error) {
	col, err := r.datasetCol(ctx)
	if err != nil {
		return nil, err
	}

	re := primitive.Regex{Pattern: q, Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": re},
		bson.M{"related_title": re},
		bson.M{"groups": bson.M{"$in": bson.A{re}}},
		bson.M{"subgroups": bson.M{"$in": bson.A{re}}},
	}}

	cur, err := col.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PublicationDoc
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PublicationRepository) CountDataset(ctx context.Context) (int64, error) {
	col, err := r.datasetCol(ctx)
	if err != nil {
		return 0, err
	}
	return col.CountDocuments(ctx, bson.M{})
}

// ====== CRUD sobre la colección de la app ======

func (r *PublicationRepository) Insert(ctx context.Context, doc *models.PublicationDoc) (primitive.ObjectID, error) {
	col, err := r.appCol(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *PublicationRepository) InsertMany(ctx context.Context, docs []models.PublicationDoc) ([]primitive.ObjectID, error) {
	col, err := r.appCol(ctx)
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

func (r *PublicationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PublicationDoc, error) {
	col, err := r.appCol(ctx)
	if err != nil {
		return nil, err
	}

	var doc models.PublicationDoc
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *PublicationRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	col, err := r.appCol(ctx)
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

func (r *PublicationRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	col, err := r.appCol(ctx)
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

// ====== Probe en tres niveles ======

// probeTier es un nivel del probe: una ubicación consultable con nombre
// para el log.
type probeTier struct {
	name string
	find func(ctx context.Context) ([]models.PublicationDoc, error)
}

// walkProbe corre los niveles en orden y devuelve el primero que trae
// documentos. Un vacío legítimo (o un error, que se loguea) dispara el
// siguiente nivel; el fallback solo se suma cuando está habilitado.
func walkProbe(ctx context.Context, tiers []probeTier, fallbackEnabled bool, fallback probeTier) []models.PublicationDoc {
	if fallbackEnabled {
		tiers = append(tiers, fallback)
	}
	for _, t := range tiers {
		docs, err := t.find(ctx)
		if err != nil {
			log.Printf("[publications] probe %s falló: %v\n", t.name, err)
			continue
		}
		if len(docs) > 0 {
			return docs
		}
	}
	return nil
}

// SearchProbe busca publicaciones por término. Nivel 1: colección de la app
// (title o content). Nivel 2: dataset configurado (solo title).
// Nivel 3: escaneo de todas las bases (solo con ProbeFallback).
func (r *PublicationRepository) SearchProbe(ctx context.Context, term string, skip, limit int) ([]models.PublicationDoc, error) {
	app, err := r.appCol(ctx)
	if err != nil {
		return nil, err
	}
	dataset, err := r.datasetCol(ctx)
	if err != nil {
		return nil, err
	}

	re := bson.M{"$regex": term, "$options": "i"}
	titleOrContent := bson.M{"$or": bson.A{
		bson.M{"title": re},
		bson.M{"content": re},
	}}
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))

	tiers := []probeTier{
		{"nivel 1", func(ctx context.Context) ([]models.PublicationDoc, error) {
			return findPublications(ctx, app, titleOrContent, opts)
		}},
		{"nivel 2", func(ctx context.Context) ([]models.PublicationDoc, error) {
			return findPublications(ctx, dataset, bson.M{"title": re}, opts)
		}},
	}
	scan := probeTier{"nivel 3", func(ctx context.Context) ([]models.PublicationDoc, error) {
		cols, err := r.scanCollections(ctx)
		if err != nil {
			return nil, err
		}
		for _, col := range cols {
			docs, err := findPublications(ctx, col, titleOrContent, opts)
			if err != nil {
				continue
			}
			if len(docs) > 0 {
				return docs, nil
			}
		}
		return nil, nil
	}}
	return walkProbe(ctx, tiers, r.cfg.ProbeFallback, scan), nil
}

// CountProbe suma documentos en todas las ubicaciones de publicaciones.
func (r *PublicationRepository) CountProbe(ctx context.Context) (int64, error) {
	cols, err := r.probeTargets(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, col := range cols {
		n, err := col.CountDocuments(ctx, bson.M{})
		if err != nil {
			continue
		}
		total += n
	}
	return total, nil
}

// DistinctTypesAndGroups junta los valores distintos de `type` y `groups`
// de todas las ubicaciones de publicaciones.
func (r *PublicationRepository) DistinctTypesAndGroups(ctx context.Context) ([]string, []string, error) {
	cols, err := r.probeTargets(ctx)
	if err != nil {
		return nil, nil, err
	}

	typeSet := map[string]struct{}{}
	groupSet := map[string]struct{}{}
	for _, col := range cols {
		if vals, err := col.Distinct(ctx, "type", bson.M{}); err == nil {
			addStrings(typeSet, vals)
		}
		if vals, err := col.Distinct(ctx, "groups", bson.M{}); err == nil {
			addStrings(groupSet, vals)
		}
	}
	return setToSlice(typeSet), setToSlice(groupSet), nil
}

// PublicationLocation describe una colección con publicaciones, para el
// endpoint de debug.
type PublicationLocation struct {
	Database     string   `json:"database"`
	Collection   string   `json:"collection"`
	Count        int64    `json:"count"`
	SampleFields []string `json:"sample_fields"`
}

// DebugReport resume el servidor Mongo: bases no-sistema disponibles y
// dónde viven las publicaciones, con conteo y campos de un doc de muestra.
type DebugReport struct {
	Databases []string              `json:"databases"`
	Locations []PublicationLocation `json:"locations"`
}

// DebugInfo escanea el servidor entero y arma el reporte de debug.
func (r *PublicationRepository) DebugInfo(ctx context.Context) (*DebugReport, error) {
	client, err := r.mongo.Client(ctx)
	if err != nil {
		return nil, err
	}

	dbNames, err := client.ListDatabaseNames(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	report := &DebugReport{Databases: []string{}, Locations: []PublicationLocation{}}
	for _, dbName := range dbNames {
		if isSystemDB(dbName) {
			continue
		}
		report.Databases = append(report.Databases, dbName)

		database := client.Database(dbName)
		collNames, err := database.ListCollectionNames(ctx, bson.M{})
		if err != nil {
			continue
		}
		for _, collName := range collNames {
			if !strings.Contains(strings.ToLower(collName), "publication") {
				continue
			}
			col := database.Collection(collName)
			n, err := col.CountDocuments(ctx, bson.M{})
			if err != nil {
				n = -1
			}
			loc := PublicationLocation{
				Database:     dbName,
				Collection:   collName,
				Count:        n,
				SampleFields: []string{},
			}
			var sample bson.M
			if err := col.FindOne(ctx, bson.M{}).Decode(&sample); err == nil {
				loc.SampleFields = sampleFieldNames(sample)
			}
			report.Locations = append(report.Locations, loc)
		}
	}
	return report, nil
}

// sampleFieldNames lista las claves de un documento, ordenadas.
func sampleFieldNames(doc bson.M) []string {
	out := make([]string, 0, len(doc))
	for k := range doc {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// probeTargets devuelve las colecciones a consultar para stats/categorías:
// con ProbeFallback el escaneo completo (cubre las configuradas), sin él
// las dos ubicaciones explícitas.
func (r *PublicationRepository) probeTargets(ctx context.Context) ([]*mongo.Collection, error) {
	if r.cfg.ProbeFallback {
		return r.scanCollections(ctx)
	}

	app, err := r.appCol(ctx)
	if err != nil {
		return nil, err
	}
	dataset, err := r.datasetCol(ctx)
	if err != nil {
		return nil, err
	}
	return []*mongo.Collection{app, dataset}, nil
}

// scanCollections recorre todas las bases no-sistema y devuelve las
// colecciones cuyo nombre contiene "publication".
func (r *PublicationRepository) scanCollections(ctx context.Context) ([]*mongo.Collection, error) {
	client, err := r.mongo.Client(ctx)
	if err != nil {
		return nil, err
	}

	dbNames, err := client.ListDatabaseNames(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var out []*mongo.Collection
	for _, dbName := range dbNames {
		if isSystemDB(dbName) {
			continue
		}
		database := client.Database(dbName)
		collNames, err := database.ListCollectionNames(ctx, bson.M{})
		if err != nil {
			continue
		}
		for _, collName := range collNames {
			if strings.Contains(strings.ToLower(collName), "publication") {
				out = append(out, database.Collection(collName))
			}
		}
	}
	return out, nil
}

func isSystemDB(name string) bool {
	return name == "admin" || name == "local" || name == "config"
}

func findPublications(ctx context.Context, col *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]models.PublicationDoc, error) {
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PublicationDoc
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func addStrings(set map[string]struct{}, vals []any) {
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			set[s] = struct{}{}
		}
	}
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}
