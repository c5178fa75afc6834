package keystore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrFailedToParseRedisConnString = errors.New("keystore: failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("keystore: redis did not become ready within the given time period")
)

// RedisConfig describes the Redis connection used by the Redis store.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL should be in the format "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of retry attempts to connect.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the interval between retry attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout bounds the whole connection phase.
}

// ConnectRedis establishes a Redis connection with retry, verifying it with a
// ping before handing it out.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	for i := 0; i < cfg.RetryAttempts; i++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		default:
			time.Sleep(cfg.RetryInterval)
		}
	}

	return nil, ErrRedisNotReady
}

// Redis implements Store on a Redis client. Expiry rides on Redis TTLs and
// single-use consumption on GETDEL, so the store works correctly across
// multiple application instances.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed key store. All entries are namespaced under
// the given prefix (defaults to "magiclink" when empty).
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "magiclink"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Save(ctx context.Context, id, key string, ttl time.Duration) error {
	if id == "" {
		return ErrInvalidID
	}
	return r.client.Set(ctx, r.prefix+":"+id, key, ttl).Err()
}

func (r *Redis) Consume(ctx context.Context, id string) (string, error) {
	key, err := r.client.GetDel(ctx, r.prefix+":"+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return key, nil
}
