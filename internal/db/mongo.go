package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ganeshdatta23/skillstacker/internal/config"
)

// ErrMongoUnavailable marca fallas de conexión al document store; los
// handlers lo mapean a 503.
var ErrMongoUnavailable = errors.New("mongodb unavailable")

// IsUnavailable reporta si err es una falla de conexión a Mongo.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrMongoUnavailable)
}

// Mongo es el handle único al document store. Se conecta perezosamente
// bajo lock, se reutiliza durante toda la vida del proceso y se cierra
// explícitamente en el shutdown.
type Mongo struct {
	cfg *config.Config

	mu     sync.Mutex
	client *mongo.Client
}

func NewMongo(cfg *config.Config) *Mongo {
	return &Mongo{cfg: cfg}
}

// Client devuelve el cliente conectado, creándolo la primera vez.
// Cada conexión nueva se valida con un ping antes de entregarla.
func (m *Mongo) Client(ctx context.Context) (*mongo.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().
		ApplyURI(m.cfg.MongoURI).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMongoUnavailable, err)
	}

	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", ErrMongoUnavailable, err)
	}

	m.client = client
	log.Printf("[mongo] conectado a %s\n", m.cfg.MongoURI)
	return m.client, nil
}

// Database devuelve la base principal (skillstacker).
func (m *Mongo) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := m.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(m.cfg.MongoDB), nil
}

// Close desconecta el cliente si llegó a crearse.
func (m *Mongo) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}
