// Package rediscache implementa la caché de umbrales sobre Redis.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/comercio-pro/internal/application/inventory"
	"github.com/tu-usuario/comercio-pro/pkg/config"
)

var _ inventory.ThresholdCache = (*ThresholdCache)(nil)

// ThresholdCache caché de umbrales respaldada por Redis con TTL por clave.
type ThresholdCache struct {
	client *redis.Client
}

// NewClient construye el cliente Redis a partir de la configuración y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewThresholdCache construye la caché sobre un cliente ya conectado.
func NewThresholdCache(client *redis.Client) *ThresholdCache {
	return &ThresholdCache{client: client}
}

// Get devuelve el valor cacheado y true, o false si la clave no existe.
func (c *ThresholdCache) Get(ctx context.Context, key string) (int, bool, error) {
	value, err := c.client.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Set escribe el valor con el TTL dado.
func (c *ThresholdCache) Set(ctx context.Context, key string, value int, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete elimina la clave. Borrar una clave inexistente no es error.
func (c *ThresholdCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
