package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faushop/storefront/internal/remote"
	"github.com/faushop/storefront/internal/translate"
)

// SessionsConfig configures the session registry.
type SessionsConfig struct {
	// TTL is how long an idle session survives before eviction. Carts are
	// session-scoped and die with their session.
	TTL time.Duration
	// NoticeTTL overrides the banner auto-dismiss delay for new sessions.
	NoticeTTL time.Duration
}

// sessionEntry pairs a Store with its last-touched time for TTL eviction.
type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// Sessions hands out per-session Stores sharing a single catalog mirror.
// Idle sessions are evicted by a background goroutine; every access renews
// the TTL.
type Sessions struct {
	cfg        SessionsConfig
	catalog    *Catalog
	writer     remote.Writer
	translator translate.Translator
	lg         *zap.Logger

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

// NewSessions creates a session registry over the shared catalog.
func NewSessions(cfg SessionsConfig, c *Catalog, writer remote.Writer, translator translate.Translator, lg *zap.Logger) *Sessions {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	return &Sessions{
		cfg:        cfg,
		catalog:    c,
		writer:     writer,
		translator: translator,
		lg:         lg,
		entries:    make(map[string]*sessionEntry),
	}
}

// Get returns the Store for token, creating one when the token is unknown
// or empty. The returned token identifies the session and should be set as
// the session cookie.
func (s *Sessions) Get(token string) (string, *Store) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != "" {
		if e, ok := s.entries[token]; ok {
			e.lastSeen = now
			return token, e.store
		}
	}

	token = uuid.New().String()
	opts := []Option(nil)
	if s.cfg.NoticeTTL > 0 {
		opts = append(opts, WithNoticeTTL(s.cfg.NoticeTTL))
	}
	st := New(s.catalog, s.writer, s.translator, s.lg, opts...)
	s.entries[token] = &sessionEntry{store: st, lastSeen: now}
	return token, st
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// cleanup evicts sessions idle for longer than the TTL.
func (s *Sessions) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, e := range s.entries {
		if now.Sub(e.lastSeen) >= s.cfg.TTL {
			delete(s.entries, token)
		}
	}
}

// StartCleanup launches a background goroutine that periodically evicts
// idle sessions. It stops when ctx is cancelled.
func (s *Sessions) StartCleanup(ctx context.Context) {
	interval := s.cfg.TTL / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.cleanup(now)
			}
		}
	}()
}
