package historysync

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/krobus00/rapidwire-bot/internal/entity"
	"github.com/redis/go-redis/v9"
)

type CursorStore interface {
	Load(ctx context.Context) (entity.HistoryCursor, bool, error)
	Save(ctx context.Context, cursor entity.HistoryCursor) error
}

type RedisCursorStore struct {
	client *redis.Client
	key    string
}

func NewRedisCursorStore(client *redis.Client, key string) (*RedisCursorStore, error) {
	if key == "" {
		return nil, errors.New("history sync cursor key is required")
	}

	return &RedisCursorStore{client: client, key: key}, nil
}

func (s *RedisCursorStore) Load(ctx context.Context) (entity.HistoryCursor, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.HistoryCursor{}, false, nil
		}
		return entity.HistoryCursor{}, false, fmt.Errorf("load history cursor: %w", err)
	}

	var cursor entity.HistoryCursor
	if err := json.Unmarshal(raw, &cursor); err != nil {
		return entity.HistoryCursor{}, false, fmt.Errorf("decode history cursor: %w", err)
	}

	return cursor, true, nil
}

func (s *RedisCursorStore) Save(ctx context.Context, cursor entity.HistoryCursor) error {
	payload, err := json.Marshal(cursor)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key, payload, 0).Err()
}
