package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ganeshdatta23/skillstacker/internal/config"
)

// Cache envuelve Redis para guardar respuestas JSON con TTL. Es best-effort:
// si Redis no está disponible las operaciones se degradan a no-op.
type Cache struct {
	client *redis.Client
}

func New(cfg *config.Config) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] no disponible (%v), cache deshabilitado\n", err)
		return &Cache{}
	}

	log.Println("[redis] OK")
	return &Cache{client: client}
}

// GetJSON lee una key, si existe deserializa el JSON en `dest`.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa `value` y lo guarda con TTL en segundos.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttlSeconds int) error {
	if c == nil || c.client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	return c.client.Set(ctx, key, b, ttl).Err()
}
