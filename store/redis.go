package store

import (
	"context"
	"time"

	"github.com/ducka/go-kayak-rx/utils"
	"github.com/redis/go-redis/v9"
)

// RedisBuffer keeps the buffer in a redis list so that a replay history survives the process that
// recorded it and can be shared between processes replaying the same key.
type RedisBuffer[T any] struct {
	client     redis.UniversalClient
	key        string
	size       int
	marshaller utils.Marshaller[bufferEnvelope[T]]
	opts       bufferOptions
}

type bufferEnvelope[T any] struct {
	V  T     `json:"v"`
	At int64 `json:"at"`
}

var _ Buffer[any] = (*RedisBuffer[any])(nil)

// NewRedisBuffer creates a buffer stored under key holding at most size values. A size of zero or less
// means the buffer is unbounded. With WithExpiry the key itself also expires once nothing has been
// appended for the expiry duration.
func NewRedisBuffer[T any](client redis.UniversalClient, key string, size int, options ...BufferOption) *RedisBuffer[T] {
	if client == nil {
		panic("client should not be nil")
	}
	if key == "" {
		panic("key should not be empty")
	}

	return &RedisBuffer[T]{
		client:     client,
		key:        key,
		size:       size,
		marshaller: utils.NewJSONMarshaller[bufferEnvelope[T]](),
		opts:       applyOptions(options),
	}
}

func (r *RedisBuffer[T]) Append(ctx context.Context, value T) error {
	payload, err := r.marshaller.Marshal(bufferEnvelope[T]{
		V:  value,
		At: r.opts.Clock.Now().UnixNano(),
	})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, r.key, payload)
	if r.size > 0 {
		pipe.LTrim(ctx, r.key, int64(-r.size), -1)
	}
	if r.opts.Expiry != nil {
		pipe.Expire(ctx, r.key, *r.opts.Expiry)
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisBuffer[T]) Load(ctx context.Context) ([]T, error) {
	payloads, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	now := r.opts.Clock.Now()
	values := make([]T, 0, len(payloads))
	for _, payload := range payloads {
		envelope, err := r.marshaller.Unmarshal(payload)
		if err != nil {
			return nil, err
		}
		if r.opts.expired(time.Unix(0, envelope.At), now) {
			continue
		}
		values = append(values, envelope.V)
	}
	return values, nil
}

func (r *RedisBuffer[T]) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
