package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ganeshdatta23/skillstacker/internal/models"
)

func fixedTier(name string, docs []models.PublicationDoc, called *bool) probeTier {
	return probeTier{name, func(ctx context.Context) ([]models.PublicationDoc, error) {
		if called != nil {
			*called = true
		}
		return docs, nil
	}}
}

func emptyTier(name string, called *bool) probeTier {
	return fixedTier(name, nil, called)
}

func TestWalkProbeFirstTierWins(t *testing.T) {
	want := []models.PublicationDoc{{Title: "Redes neuronales"}}
	var secondCalled bool

	got := walkProbe(context.Background(),
		[]probeTier{fixedTier("nivel 1", want, nil), emptyTier("nivel 2", &secondCalled)},
		false, emptyTier("nivel 3", nil))

	assert.Equal(t, want, got)
	assert.False(t, secondCalled, "el nivel 2 no debería consultarse si el 1 trajo documentos")
}

func TestWalkProbeEmptyTierFallsThrough(t *testing.T) {
	want := []models.PublicationDoc{{Title: "Compiladores"}}

	got := walkProbe(context.Background(),
		[]probeTier{emptyTier("nivel 1", nil), fixedTier("nivel 2", want, nil)},
		false, emptyTier("nivel 3", nil))

	assert.Equal(t, want, got)
}

func TestWalkProbeErrorFallsThrough(t *testing.T) {
	failing := probeTier{"nivel 1", func(ctx context.Context) ([]models.PublicationDoc, error) {
		return nil, errors.New("timeout")
	}}
	want := []models.PublicationDoc{{Title: "Sistemas operativos"}}

	got := walkProbe(context.Background(),
		[]probeTier{failing, fixedTier("nivel 2", want, nil)},
		false, emptyTier("nivel 3", nil))

	assert.Equal(t, want, got)
}

func TestWalkProbeFallbackDisabled(t *testing.T) {
	var fallbackCalled bool

	got := walkProbe(context.Background(),
		[]probeTier{emptyTier("nivel 1", nil), emptyTier("nivel 2", nil)},
		false, fixedTier("nivel 3", []models.PublicationDoc{{Title: "oculta"}}, &fallbackCalled))

	assert.Nil(t, got)
	assert.False(t, fallbackCalled, "el escaneo no debería correr sin el flag")
}

func TestWalkProbeFallbackEnabled(t *testing.T) {
	want := []models.PublicationDoc{{Title: "Bases de datos"}}
	var fallbackCalled bool

	got := walkProbe(context.Background(),
		[]probeTier{emptyTier("nivel 1", nil), emptyTier("nivel 2", nil)},
		true, fixedTier("nivel 3", want, &fallbackCalled))

	assert.Equal(t, want, got)
	assert.True(t, fallbackCalled)
}

func TestSampleFieldNamesSorted(t *testing.T) {
	fields := sampleFieldNames(bson.M{"title": "x", "_id": 1, "groups": bson.A{}})

	assert.Equal(t, []string{"_id", "groups", "title"}, fields)
}

func TestSampleFieldNamesEmptyDoc(t *testing.T) {
	assert.Empty(t, sampleFieldNames(bson.M{}))
}
