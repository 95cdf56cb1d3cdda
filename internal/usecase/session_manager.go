package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"jobalert-web/internal/pkg/jwt"

	"github.com/robfig/cron/v3"
)

// ExpiringStore is a TokenStore that keeps expired tokens until pruned.
// Redis expires keys itself; the in-process store does not.
type ExpiringStore interface {
	PruneExpired() int
}

// SessionManager maps session ids to their Session. Idle sessions are evicted
// from memory by a cron sweep; their persisted token is left in the store so
// a returning browser is restored on its next request.
type SessionManager struct {
	api       PortalAPI
	store     TokenStore
	inspector jwt.Inspector
	logger    *log.Logger
	idleTTL   time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session

	cron *cron.Cron
}

func NewSessionManager(api PortalAPI, store TokenStore, inspector jwt.Inspector, idleTTL time.Duration, logger *log.Logger) *SessionManager {
	return &SessionManager{
		api:       api,
		store:     store,
		inspector: inspector,
		logger:    logger,
		idleTTL:   idleTTL,
		now:       time.Now,
		sessions:  map[string]*Session{},
	}
}

// Get returns the session for sid, creating and bootstrapping it on first use.
func (m *SessionManager) Get(ctx context.Context, sid string) *Session {
	sid = strings.TrimSpace(sid)

	m.mu.Lock()
	s, ok := m.sessions[sid]
	if !ok {
		s = NewSession(sid, m.api, m.store, m.inspector, m.logger)
		s.now = m.now
		s.lastSeen = m.now()
		m.sessions[sid] = s
	}
	m.mu.Unlock()

	s.touch()
	s.Bootstrap(ctx)
	return s
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle longer than the configured TTL and returns how
// many were removed.
func (m *SessionManager) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for sid, s := range m.sessions {
		if s.idleSince(now) > m.idleTTL {
			delete(m.sessions, sid)
			removed++
		}
	}
	return removed
}

func (m *SessionManager) runSweep() {
	if n := m.Sweep(); n > 0 && m.logger != nil {
		m.logger.Printf("[Session] evicted %d idle session(s), %d active", n, m.Len())
	}
	es, ok := m.store.(ExpiringStore)
	if !ok {
		return
	}
	if n := es.PruneExpired(); n > 0 && m.logger != nil {
		m.logger.Printf("[Session] pruned %d expired token(s)", n)
	}
}

func (m *SessionManager) StartSweeper(spec string) error {
	m.cron = cron.New(cron.WithLogger(cron.DefaultLogger))
	_, err := m.cron.AddFunc(spec, m.runSweep)
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	m.cron.Start()
	if m.logger != nil {
		m.logger.Printf("[Session] sweeper started spec=%s idle_ttl=%s", spec, m.idleTTL)
	}
	return nil
}

func (m *SessionManager) StopSweeper() {
	if m.cron == nil {
		return
	}
	<-m.cron.Stop().Done()
}
