package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"storefront/internal/domain"
)

// DefaultMaxSessions bounds the live stores a Sessions registry keeps when
// no limit is configured.
const DefaultMaxSessions = 10000

// Sessions hands out one Store per client session, opening it from the slot
// on first use. Consumers receive stores from here instead of sharing one.
//
// At most size stores stay live; the least recently used is dropped and
// reloaded from the slot on its next Get. A coupon held only in memory is
// lost with it.
type Sessions struct {
	mu     sync.Mutex
	stores *lru.Cache[string, *Store]
	opts   Options
}

// NewSessions returns a registry whose stores share opts. size <= 0 means
// DefaultMaxSessions.
func NewSessions(opts Options, size int) *Sessions {
	if size <= 0 {
		size = DefaultMaxSessions
	}
	stores, err := lru.New[string, *Store](size)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Sessions{
		stores: stores,
		opts:   opts,
	}
}

// Key is the slot key holding the line items of session.
func Key(session string) string {
	return "cart:" + session
}

// ParseSession returns the canonical form of a session id. Ids are UUIDs
// as issued by POST /sessions.
func ParseSession(session string) (string, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return "", fmt.Errorf("cart session required: %w", domain.ErrInvalidInput)
	}
	id, err := uuid.Parse(session)
	if err != nil {
		return "", fmt.Errorf("cart session %q is not a uuid: %w", session, domain.ErrInvalidInput)
	}
	return id.String(), nil
}

// Get returns the store for session, rehydrating it on first access.
func (s *Sessions) Get(ctx context.Context, session string) (*Store, error) {
	session, err := ParseSession(session)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stores.Get(session); ok {
		return st, nil
	}
	st := Open(ctx, Key(session), s.opts)
	s.stores.Add(session, st)
	return st, nil
}

// Forget drops the in-memory store for session. Persisted state is kept and
// will be reloaded on the next Get.
func (s *Sessions) Forget(session string) {
	if id, err := ParseSession(session); err == nil {
		s.stores.Remove(id)
	}
}

// Len reports how many sessions are held in memory.
func (s *Sessions) Len() int {
	return s.stores.Len()
}
