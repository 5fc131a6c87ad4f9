package bridge

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process bridge used for development and tests. Values are
// held as marshaled JSON so that Load/Save exercise the same serialization
// path as the durable backends, timestamps included.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory bridge.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load unmarshals the stored snapshot for key into v.
func (m *Memory) Load(_ context.Context, key string, v any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// Save marshals v and replaces the snapshot for key.
func (m *Memory) Save(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
