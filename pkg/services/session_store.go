package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nielrocha96/planilha-engine/pkg/apperrors"
	"github.com/nielrocha96/planilha-engine/pkg/models"
)

// DefaultMaxSessions bounds the store when no explicit cap is configured.
// Every session holds a whole table in memory.
const DefaultMaxSessions = 100

// SessionStore keeps uploaded sessions in memory for the process lifetime.
// It is created once in main and passed by reference to every consumer.
// A TTL of zero means sessions never expire; a positive TTL evicts
// sessions idle for longer than that, either lazily on Get or through the
// cleanup goroutine. The store lock protects the map and history slices;
// it does not serialize asks within one session, so concurrent questions
// on the same session have no ordering guarantee.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*models.Session
	ttl         time.Duration
	maxSessions int
	logger      *zap.Logger
	stop        chan struct{}
}

// NewSessionStore creates a session store. maxSessions <= 0 falls back to
// DefaultMaxSessions.
func NewSessionStore(ttl time.Duration, maxSessions int, logger *zap.Logger) *SessionStore {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &SessionStore{
		sessions:    make(map[string]*models.Session),
		ttl:         ttl,
		maxSessions: maxSessions,
		logger:      logger,
	}
}

// Create registers a new session for an uploaded table and returns it.
// When the store is full the least recently used session is evicted.
func (s *SessionStore) Create(filename string, table *models.Table) *models.Session {
	now := time.Now()
	sess := &models.Session{
		ID:         uuid.NewString(),
		Filename:   filename,
		Table:      table,
		CreatedAt:  now,
		LastAccess: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.maxSessions {
		s.evictLRU()
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns a live session and refreshes its last access time. Expired
// or unknown IDs yield apperrors.ErrSessionNotFound.
func (s *SessionStore) Get(id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, apperrors.ErrSessionNotFound
	}
	if s.expired(sess, time.Now()) {
		// let the cleanup pass delete it
		return nil, apperrors.ErrSessionNotFound
	}
	sess.LastAccess = time.Now()
	return sess, nil
}

// Delete removes a session. Unknown IDs yield apperrors.ErrSessionNotFound.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return apperrors.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// AppendHistory records one exchange under the store lock and returns a
// copy of the full history, newest entry last.
func (s *SessionStore) AppendHistory(id string, exchange models.QAExchange) ([]models.QAExchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[id]
	if !exists || s.expired(sess, time.Now()) {
		return nil, apperrors.ErrSessionNotFound
	}
	sess.History = append(sess.History, exchange)
	return copyHistory(sess.History), nil
}

// History returns a copy of a session's history without touching its
// last access time.
func (s *SessionStore) History(id string) ([]models.QAExchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[id]
	if !exists || s.expired(sess, time.Now()) {
		return nil, apperrors.ErrSessionNotFound
	}
	return copyHistory(sess.History), nil
}

// Count returns the number of live sessions.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup removes every expired session. No-op when TTL is zero.
func (s *SessionStore) Cleanup() {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			s.logger.Debug("session expired", zap.String("session_id", id))
		}
	}
}

// StartCleanup starts a background goroutine that periodically evicts
// expired sessions. It does nothing when TTL is zero. Close stops it.
func (s *SessionStore) StartCleanup(interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	s.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Cleanup()
			case <-s.stop:
				return
			}
		}
	}()
}

// Close stops the cleanup goroutine if one is running.
func (s *SessionStore) Close() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *SessionStore) expired(sess *models.Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.LastAccess) > s.ttl
}

// evictLRU removes the least recently used session. Callers hold the lock.
func (s *SessionStore) evictLRU() {
	var oldestID string
	var oldestTime time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.LastAccess.Before(oldestTime) {
			oldestID = id
			oldestTime = sess.LastAccess
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
		s.logger.Warn("session store full, evicting least recently used session",
			zap.String("session_id", oldestID))
	}
}

func copyHistory(history []models.QAExchange) []models.QAExchange {
	out := make([]models.QAExchange, len(history))
	copy(out, history)
	return out
}
