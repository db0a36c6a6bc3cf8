// Package authstore owns the authenticated agent identity. The identity is
// cached in memory and mirrored to a persisted blob under a fixed key, so a
// restart restores the session without a network call. No other component
// mutates identity state.
package authstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

// AgentIdentityKey is the storage key for the agent identity blob.
// ApplicantTokenKey is the storage key for the applicant bearer token.
// The two namespaces are disjoint; a store bound to one must never read or
// write the other.
const (
	AgentIdentityKey  = "agent_user"
	ApplicantTokenKey = "accessToken"
)

// TerminateFunc fires the backend session-termination request on logout.
type TerminateFunc func(ctx context.Context) error

// Store is the process-wide authenticated-identity cache.
type Store struct {
	mu        sync.Mutex
	storage   Storage
	terminate TerminateFunc
	logger    *slog.Logger
	identity  models.Identity
	loading   bool
	initOnce  sync.Once
}

// NewStore creates a store backed by the given storage. terminate may be nil
// when there is no server-side session to end. The store reports loading
// until Initialize has run.
func NewStore(storage Storage, terminate TerminateFunc, logger *slog.Logger) *Store {
	return &Store{
		storage:   storage,
		terminate: terminate,
		logger:    logger,
		loading:   true,
	}
}

// Initialize restores a persisted identity. A blob that fails to decode is
// discarded and logged; the store then behaves as unauthenticated. The
// loading flag is cleared exactly once, whatever the outcome.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
		}()

		blob, ok, err := s.storage.Get(ctx)
		if err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "session restore failed", errors.SlogError(err))
			return
		}
		if !ok {
			return
		}

		var identity models.Identity
		if err = json.Unmarshal(blob, &identity); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "discarding undecodable identity blob", errors.SlogError(err))
			if err = s.storage.Delete(ctx); err != nil {
				s.logger.LogAttrs(ctx, slog.LevelWarn, "delete identity blob", errors.SlogError(err))
			}
			return
		}

		s.mu.Lock()
		s.identity = identity
		s.mu.Unlock()
	})
}

// Login adopts the identity and persists it so that later restarts observe it.
func (s *Store) Login(ctx context.Context, identity models.Identity) error {
	blob, err := json.Marshal(identity)
	if err != nil {
		return errors.Wrap(err, "marshal identity")
	}
	if err = s.storage.Set(ctx, blob); err != nil {
		return errors.Wrap(err, "persist identity")
	}

	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
	return nil
}

// Logout fires the session-termination request best effort and clears local
// state unconditionally. A failed network call is logged, never retried,
// since the local session is gone either way.
func (s *Store) Logout(ctx context.Context) {
	if s.terminate != nil {
		if err := s.terminate(ctx); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "logout request failed, clearing local session anyway",
				errors.SlogError(err))
		}
	}

	if err := s.storage.Delete(ctx); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "delete identity blob", errors.SlogError(err))
	}

	s.mu.Lock()
	s.identity = models.Identity{}
	s.mu.Unlock()
}

// Identity returns the current identity; the zero value when unauthenticated.
func (s *Store) Identity() models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Authenticated is a pure derivation: true iff an identity is present.
func (s *Store) Authenticated() bool {
	return s.Identity().Valid()
}

// Loading reports whether session restoration is still in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
