package bridge

import (
	"context"
	"encoding/json"
	"log/slog"

	redisstorage "github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// pubsubChannel carries snapshot change notifications between processes.
const pubsubChannel = "linkhub:snapshot_changed"

// Redis stores snapshots as JSON blobs and broadcasts writes over pub/sub,
// with the same origin filtering as the postgres bridge.
type Redis struct {
	storage *redisstorage.Storage
	client  goredis.UniversalClient
	origin  string
}

// NewRedis connects to redis using a connection URL.
func NewRedis(connURL string) *Redis {
	storage := redisstorage.New(redisstorage.Config{URL: connURL})
	return &Redis{
		storage: storage,
		client:  storage.Conn(),
		origin:  uuid.NewString(),
	}
}

// Load reads the snapshot stored under key.
func (r *Redis) Load(_ context.Context, key string, v any) (bool, error) {
	raw, err := r.storage.Get(key)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// Save replaces the snapshot for key and notifies other processes.
func (r *Redis) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := r.storage.Set(key, raw, 0); err != nil {
		return err
	}

	payload, err := json.Marshal(changeEvent{Origin: r.origin, Key: key})
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, pubsubChannel, string(payload)).Err(); err != nil {
		slog.Warn("failed to publish snapshot change", "key", key, "error", err)
	}
	return nil
}

// Watch subscribes to snapshot changes from other processes and invokes fn
// with the changed key. It blocks until ctx is done.
func (r *Redis) Watch(ctx context.Context, fn ChangeHandler) error {
	sub := r.client.Subscribe(ctx, pubsubChannel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-sub.Channel():
			if !ok {
				return nil
			}
			var event changeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.Warn("ignoring malformed snapshot notification", "payload", msg.Payload, "error", err)
				continue
			}
			if event.Origin == r.origin {
				continue
			}
			fn(event.Key)
		}
	}
}

// Close closes the underlying redis connection.
func (r *Redis) Close() error {
	return r.storage.Close()
}
