// Package drafts persists refinement drafts (free-text notes attached to an
// asset while it is being reviewed). Callers depend on Store; the CLI wires
// the SQLite adapter and tests use the in-memory one.
package drafts

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrNotFound indicates no draft is stored under the key.
var ErrNotFound = errors.New("draft not found")

// ErrEmptyKey is returned for operations on an empty key.
var ErrEmptyKey = errors.New("draft key is empty")

// Draft is one stored entry.
type Draft struct {
	Key       string
	Body      string
	UpdatedAt time.Time
}

// Store is the key/value port used for draft autosave.
type Store interface {
	Get(ctx context.Context, key string) (Draft, error)
	Set(ctx context.Context, key, body string) error
	Delete(ctx context.Context, key string) error
	// List returns drafts whose key starts with prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]Draft, error)
	Close() error
}

// NoteKey is the key under which the note for asset is kept.
func NoteKey(asset string) string {
	return "notes/" + asset
}

// MemoryStore keeps drafts in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Draft
	now   func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[string]Draft{}, now: time.Now}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.items[key]
	if !ok {
		return Draft{}, ErrNotFound
	}
	return d, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = Draft{Key: key, Body: body, UpdatedAt: m.now().UTC()}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[key]; !ok {
		return ErrNotFound
	}
	delete(m.items, key)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, prefix string) ([]Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Draft
	for k, d := range m.items {
		if strings.HasPrefix(k, prefix) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
