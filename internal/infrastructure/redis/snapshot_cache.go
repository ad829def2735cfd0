// Package redis guarda en Redis la última copia válida de las tablas para arrancar
// sin conexión al almacén remoto.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-vtr/internal/domain/repository"
)

// DefaultKey clave usada si no se configura otra.
const DefaultKey = "inventario-vtr:snapshot"

// SnapshotCache implementa repository.SnapshotCache sobre go-redis.
type SnapshotCache struct {
	client goredis.UniversalClient
	key    string
	ttl    time.Duration // 0 = sin vencimiento
}

var _ repository.SnapshotCache = (*SnapshotCache)(nil)

// NewSnapshotCache construye la caché. key vacío usa DefaultKey.
func NewSnapshotCache(client goredis.UniversalClient, key string, ttl time.Duration) *SnapshotCache {
	if key == "" {
		key = DefaultKey
	}
	return &SnapshotCache{client: client, key: key, ttl: ttl}
}

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}

// Save serializa las tablas en JSON y las guarda en una sola clave.
func (c *SnapshotCache) Save(ctx context.Context, tables *repository.Tables) error {
	if tables == nil {
		return nil
	}
	b, err := json.Marshal(tables)
	if err != nil {
		return fmt.Errorf("redis: serializar snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar snapshot: %w", err)
	}
	return nil
}

// Load devuelve (nil, nil) si la clave no existe.
func (c *SnapshotCache) Load(ctx context.Context) (*repository.Tables, error) {
	b, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: leer snapshot: %w", err)
	}
	var t repository.Tables
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("redis: snapshot corrupto: %w", err)
	}
	return &t, nil
}

// Clear elimina la copia guardada.
func (c *SnapshotCache) Clear(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
