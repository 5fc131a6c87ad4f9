package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkhub/migrations"
)

// notifyChannel carries snapshot change notifications between processes.
const notifyChannel = "snapshot_changed"

// Postgres stores snapshots in a single keyed table and broadcasts writes
// over LISTEN/NOTIFY. Every bridge instance has a unique origin id embedded
// in its notifications so a process never reacts to its own writes.
type Postgres struct {
	Pool   *pgxpool.Pool
	origin string
}

// changeEvent is the NOTIFY payload.
type changeEvent struct {
	Origin string `json:"origin"`
	Key    string `json:"key"`
}

// NewPostgres creates a connection pool and verifies connectivity.
func NewPostgres(ctx context.Context, connString string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{Pool: pool, origin: uuid.NewString()}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (p *Postgres) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Load reads the snapshot stored under key.
func (p *Postgres) Load(ctx context.Context, key string, v any) (bool, error) {
	var raw []byte
	err := p.Pool.QueryRow(ctx,
		`SELECT value FROM snapshots WHERE key = $1`, key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// Save upserts the snapshot for key and notifies other processes.
func (p *Postgres) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := p.Pool.Exec(ctx, query, key, raw); err != nil {
		return err
	}

	payload, err := json.Marshal(changeEvent{Origin: p.origin, Key: key})
	if err != nil {
		return err
	}
	if _, err := p.Pool.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, string(payload)); err != nil {
		// The write itself succeeded; peers just won't hear about it until
		// their next reload.
		slog.Warn("failed to notify snapshot change", "key", key, "error", err)
	}
	return nil
}

// Watch listens for snapshot changes from other processes and invokes fn
// with the changed key. It blocks until ctx is done.
func (p *Postgres) Watch(ctx context.Context, fn ChangeHandler) error {
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `LISTEN `+notifyChannel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", notifyChannel, err)
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var event changeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			slog.Warn("ignoring malformed snapshot notification", "payload", notification.Payload, "error", err)
			continue
		}
		if event.Origin == p.origin {
			continue
		}
		fn(event.Key)
	}
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.Pool.Close()
	return nil
}
