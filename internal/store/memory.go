// internal/store/memory.go
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
)

// MemoryStore keeps session documents in a mutex-guarded map. It backs
// tests and single-process deployments with no Redis configured. Get hands
// out deep copies, so a caller re-reads the committed document rather than
// sharing memory with concurrent writers.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.Session)}
}

func (m *MemoryStore) Create(ctx context.Context, id string, totalRounds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[id]; exists {
		return fmt.Errorf("session %s already exists", id)
	}
	sess := NewSession(id, totalRounds)
	sess.CreatedAt = time.Now().UTC()
	m.sessions[id] = sess
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.Clone(), nil
}

func (m *MemoryStore) SetField(ctx context.Context, id, field string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	switch field {
	case FieldStatus:
		v, ok := value.(models.Status)
		if !ok {
			return fmt.Errorf("field %s: expected models.Status, got %T", field, value)
		}
		sess.Status = v
	case FieldCurrentRound:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("field %s: expected int, got %T", field, value)
		}
		sess.CurrentRound = v
	case FieldPlayers:
		v, ok := value.(map[string]*models.Player)
		if !ok {
			return fmt.Errorf("field %s: expected player map, got %T", field, value)
		}
		// copy so the caller's map does not alias the committed document
		cp := make(map[string]*models.Player, len(v))
		for pid, p := range v {
			pc := *p
			if p.Submission != nil {
				n := *p.Submission
				pc.Submission = &n
			}
			cp[pid] = &pc
		}
		sess.Players = cp
	case FieldRoundResults:
		v, ok := value.(map[string]*models.RoundResult)
		if !ok {
			return fmt.Errorf("field %s: expected round result map, got %T", field, value)
		}
		cp := make(map[string]*models.RoundResult, len(v))
		for k, r := range v {
			cp[k] = r.Clone()
		}
		sess.RoundResults = cp
	default:
		return fmt.Errorf("unknown session field %q", field)
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
