package purchasing

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restock-api/internal/domain"
	"github.com/jhoicas/restock-api/internal/domain/purchasing"
)

// Session factura en edición de un usuario. El Engine no es seguro para uso concurrente:
// todo acceso pasa por SessionStore.With, que serializa las operaciones de la sesión.
type Session struct {
	ID        string
	UserID    string
	Engine    *purchasing.Engine
	CreatedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time // protegido por SessionStore.mu
}

// SessionStore guarda las sesiones de edición en memoria. Cada usuario tiene a lo sumo
// una sesión: abrir una nueva descarta la anterior junto con sus ediciones sin guardar.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	byUser   map[string]string
}

// NewSessionStore crea un almacén vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		byUser:   make(map[string]string),
	}
}

// Open registra una sesión nueva para el usuario y devuelve su ID.
func (s *SessionStore) Open(userID string, engine *purchasing.Engine) string {
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Engine:    engine,
		CreatedAt: time.Now(),
	}
	sess.lastUsed = sess.CreatedAt

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.byUser[userID]; ok {
		delete(s.sessions, prev)
	}
	s.sessions[sess.ID] = sess
	s.byUser[userID] = sess.ID
	return sess.ID
}

// With ejecuta fn con la sesión bloqueada. ErrNotFound si no existe (o fue reemplazada).
func (s *SessionStore) With(id string, fn func(*Session) error) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		sess.lastUsed = time.Now()
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: sesión %s", domain.ErrNotFound, id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

// Close descarta la sesión.
func (s *SessionStore) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("%w: sesión %s", domain.ErrNotFound, id)
	}
	delete(s.sessions, id)
	if s.byUser[sess.UserID] == id {
		delete(s.byUser, sess.UserID)
	}
	return nil
}

// SweepIdle descarta las sesiones sin uso desde hace más de maxIdle y devuelve cuántas
// eliminó. Sus ediciones sin guardar se pierden.
func (s *SessionStore) SweepIdle(now time.Time, maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) <= maxIdle {
			continue
		}
		delete(s.sessions, id)
		if s.byUser[sess.UserID] == id {
			delete(s.byUser, sess.UserID)
		}
		n++
	}
	return n
}

// Len número de sesiones abiertas.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
