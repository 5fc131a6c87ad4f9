// Package bridge persists entity collections as whole JSON snapshots under
// well-known keys. A snapshot either round-trips completely or the caller
// falls back to its default; there are no partial writes. Backends that can
// observe writes from other processes implement Watcher, and the store
// reloads the changed key wholesale (last-writer-wins).
package bridge

import "context"

// Snapshot keys for the entity collections.
const (
	KeyUsers        = "users"
	KeyUploads      = "uploads"
	KeyAuditLog     = "audit_log"
	KeyChatMessages = "chat_messages"
)

// Bridge loads and saves one collection per key. Load reports found=false
// when the key has never been written.
type Bridge interface {
	Load(ctx context.Context, key string, v any) (bool, error)
	Save(ctx context.Context, key string, v any) error
	Close() error
}

// ChangeHandler is invoked with the key of a collection written by another
// process.
type ChangeHandler func(key string)

// Watcher is implemented by bridges with a cross-process change feed. Watch
// blocks until ctx is done, invoking fn for every foreign write.
type Watcher interface {
	Watch(ctx context.Context, fn ChangeHandler) error
}
