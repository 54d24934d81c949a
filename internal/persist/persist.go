// Package persist stores game state as plain JSON records keyed by kind and
// id. The memory backend serves tests and single-process runs; the redis
// backend shares state across server restarts.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Record kinds used by the game.
const (
	KindUser      = "user"
	KindInventory = "inventory"
	KindGarden    = "garden"
	KindStore     = "store"
)

// Repository stores raw JSON records by kind and id.
type Repository interface {
	Load(ctx context.Context, kind, id string) ([]byte, error)
	Save(ctx context.Context, kind, id string, data []byte) error
	Delete(ctx context.Context, kind, id string) error
}

// LoadJSON loads a record and decodes it into out.
func LoadJSON(ctx context.Context, repo Repository, kind, id string, out any) error {
	data, err := repo.Load(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", kind, id, err)
	}
	return nil
}

// SaveJSON encodes v and saves it as a record.
func SaveJSON(ctx context.Context, repo Repository, kind, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", kind, id, err)
	}
	return repo.Save(ctx, kind, id, data)
}
