package keystore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrFailedToParseDBConfig    = errors.New("keystore: failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("keystore: failed to open db connection")
)

// PostgresConfig describes the PostgreSQL connection used by the Postgres store.
type PostgresConfig struct {
	ConnectionString string        `env:"PG_CONN_URL,required"`              // ConnectionString is the connection string to the database.
	MaxOpenConns     int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"` // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns     int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`  // MaxIdleConns is the maximum number of idle connections.
	RetryAttempts    int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of retry attempts to connect.
	RetryInterval    time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the interval between retry attempts.
}

// ConnectPostgres establishes a pgx connection pool with linear backoff,
// verifying it with a ping before handing it out.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns

	for i := 0; i < cfg.RetryAttempts; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		return pool, nil
	}

	return nil, ErrFailedToOpenDBConnection
}

// Postgres implements Store on a pgx connection pool. Consumption is a single
// DELETE ... RETURNING, so concurrent redemptions of the same link race on
// the row and exactly one of them gets the key.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL-backed key store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the backing table if it does not exist yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS magiclink_keys (
			id         TEXT PRIMARY KEY,
			key        TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

func (p *Postgres) Save(ctx context.Context, id, key string, ttl time.Duration) error {
	if id == "" {
		return ErrInvalidID
	}

	_, err := p.pool.Exec(ctx, `
		INSERT INTO magiclink_keys (id, key, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET key = EXCLUDED.key, expires_at = EXCLUDED.expires_at`,
		id, key, time.Now().Add(ttl))
	return err
}

func (p *Postgres) Consume(ctx context.Context, id string) (string, error) {
	var key string
	err := p.pool.QueryRow(ctx, `
		DELETE FROM magiclink_keys
		WHERE id = $1 AND expires_at > now()
		RETURNING key`,
		id).Scan(&key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return key, nil
}

// DeleteExpired removes expired rows. Expired keys are already unredeemable;
// this only keeps the table from accumulating never-used links. Run it from
// a periodic job.
func (p *Postgres) DeleteExpired(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM magiclink_keys WHERE expires_at <= now()`)
	return err
}
