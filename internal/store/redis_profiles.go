package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/models"
)

// redisDocumentClient is the subset of *redis.Client the redis backend uses.
type redisDocumentClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// redisProfileStorage keeps the roster document under a single redis key.
type redisProfileStorage struct {
	client redisDocumentClient
	key    string
	logger *logger.Logger
}

// NewConnectRedis opens a redis connection for the roster backend and
// checks it with PING.
func NewConnectRedis(ctx context.Context, cfg config.Redis, log *logger.Logger) (PersistenceBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("error connecting redis (ping)")
		client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewConnectRedis").Str("key", cfg.Key).Msg("connected to redis successfully")

	return newRedisProfileStorage(client, cfg.Key, log), nil
}

func newRedisProfileStorage(client redisDocumentClient, key string, log *logger.Logger) *redisProfileStorage {
	return &redisProfileStorage{
		client: client,
		key:    key,
		logger: log,
	}
}

func (r *redisProfileStorage) Load(ctx context.Context) ([]models.ProfileRecord, error) {
	body, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	return decodeDocument(body)
}

func (r *redisProfileStorage) Save(ctx context.Context, records []models.ProfileRecord) error {
	body, err := encodeDocument(records)
	if err != nil {
		return err
	}

	if err = r.client.Set(ctx, r.key, body, 0).Err(); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "redisProfileStorage.Save").
			Str("key", r.key).
			Msg("failed to save roster document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *redisProfileStorage) Export(ctx context.Context) ([]byte, error) {
	body, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return emptyDocument, nil
	}
	return body, nil
}

func (r *redisProfileStorage) Close() error {
	return r.client.Close()
}

func (r *redisProfileStorage) get(ctx context.Context) ([]byte, error) {
	body, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "redisProfileStorage.get").
			Str("key", r.key).
			Msg("failed to load roster document")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return body, nil
}
