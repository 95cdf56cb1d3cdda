package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// Memory keeps tokens in process. It backs single-instance deployments and
// serves as the fallback when Redis is unreachable.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{entries: map[string]memoryEntry{}, ttl: ttl, now: time.Now}
}

func (m *Memory) LoadToken(_ context.Context, sid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sid = strings.TrimSpace(sid)
	e, ok := m.entries[sid]
	if !ok {
		return "", nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.entries, sid)
		return "", nil
	}
	return e.token, nil
}

func (m *Memory) SaveToken(_ context.Context, sid, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{token: token}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[strings.TrimSpace(sid)] = e
	return nil
}

func (m *Memory) ClearToken(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, strings.TrimSpace(sid))
	return nil
}

// PruneExpired drops every expired entry and returns how many were removed.
func (m *Memory) PruneExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for sid, e := range m.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(m.entries, sid)
			removed++
		}
	}
	return removed
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
