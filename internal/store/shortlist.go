package store

import (
	"context"
	"sync"
)

// ShortlistRegistry is the per-user set of favorited identifiers. The memory
// implementation below is the default; a Redis-backed one lives in
// internal/redis for deployments that want shortlists to outlive the process.
type ShortlistRegistry interface {
	Add(ctx context.Context, username, target string) error
	Members(ctx context.Context, username string) ([]string, error)
}

type memoryShortlist struct {
	mu    sync.RWMutex
	lists map[string]map[string]struct{}
}

func NewMemoryShortlist() ShortlistRegistry {
	return &memoryShortlist{lists: make(map[string]map[string]struct{})}
}

func (m *memoryShortlist) Add(_ context.Context, username, target string) error {
	user := NormalizeUsername(username)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lists[user] == nil {
		m.lists[user] = make(map[string]struct{})
	}
	m.lists[user][NormalizeUsername(target)] = struct{}{}
	return nil
}

func (m *memoryShortlist) Members(_ context.Context, username string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	members := make([]string, 0, len(m.lists[NormalizeUsername(username)]))
	for name := range m.lists[NormalizeUsername(username)] {
		members = append(members, name)
	}
	return members, nil
}
