package quiz

import (
	"sync"

	"github.com/google/uuid"
)

type (
	// SessionStore keeps live quiz sessions. Sessions are never persisted;
	// a store outlives nothing but the process.
	SessionStore interface {
		CreateSession(q Quiz) *Session
		GetSession(id string) (*Session, error)
		DeleteSession(id string) error
	}

	Service struct {
		quiz  Quiz
		store SessionStore
	}
)

func NewService(q Quiz, store SessionStore) *Service {
	return &Service{quiz: q, store: store}
}

func (svc *Service) Quiz() Quiz { return svc.quiz }

// StartSession opens a fresh session with every slot unanswered. Entering the
// quiz view maps to starting a new session, so a returning user gets a blank
// quiz rather than carried-over state.
func (svc *Service) StartSession() *Session {
	return svc.store.CreateSession(svc.quiz)
}

func (svc *Service) GetSession(id string) (*Session, error) {
	return svc.store.GetSession(id)
}

func (svc *Service) SetAnswer(id string, index int, value string) error {
	sess, err := svc.store.GetSession(id)
	if err != nil {
		return err
	}
	return sess.SetAnswer(index, value)
}

func (svc *Service) ResetSession(id string) error {
	sess, err := svc.store.GetSession(id)
	if err != nil {
		return err
	}
	sess.Reset()
	return nil
}

// SubmitSession scores the session; the caller hands control to the results
// view, which re-reads the same session.
func (svc *Service) SubmitSession(id string) (int, error) {
	sess, err := svc.store.GetSession(id)
	if err != nil {
		return 0, err
	}
	return sess.Submit(), nil
}

func (svc *Service) EndSession(id string) error {
	return svc.store.DeleteSession(id)
}

// memStore keeps sessions in process memory; nothing survives a restart.
type memStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

var _ SessionStore = (*memStore)(nil)

func NewSessionStore() SessionStore {
	return &memStore{sessions: make(map[string]*Session)}
}

func (st *memStore) CreateSession(q Quiz) *Session {
	sess := newSession(uuid.NewString(), q)
	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

func (st *memStore) GetSession(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (st *memStore) DeleteSession(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}
