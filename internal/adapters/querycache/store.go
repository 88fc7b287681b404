package querycache

import (
	"context"
	"encoding/json"
	"time"
)

// Entry - закэшированный ответ в JSON и момент его получения.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// Store - хранилище записей кэша. ttl - срок хранения записи (не окно свежести).
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}
