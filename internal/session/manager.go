package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rainfolio.dev/internal/services"
)

// ErrShuttingDown is returned by Serve once Shutdown has begun
var ErrShuttingDown = errors.New("session manager is shutting down")

type liveSession struct {
	session *Session
	cancel  context.CancelFunc
}

// Manager tracks the live sessions of the server
type Manager struct {
	opts     Options
	projects *services.ProjectService
	profile  *services.ProfileService
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]liveSession
	closing  bool
	wg       sync.WaitGroup
}

// NewManager creates a manager whose sessions read content from the given
// services
func NewManager(opts Options, projects *services.ProjectService, profile *services.ProfileService, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		opts:     opts,
		projects: projects,
		profile:  profile,
		logger:   logger,
		sessions: make(map[string]liveSession),
	}
}

// Serve runs a new session on conn and blocks until it ends. The connection
// is closed on return.
func (m *Manager) Serve(ctx context.Context, conn Conn) error {
	id := uuid.New()
	s, err := newSession(id, conn, m.opts, m.projects, m.profile, m.logger)
	if err != nil {
		_ = conn.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.mu.Lock()
	if m.closing {
		m.mu.Unlock()
		_ = conn.Close()
		return ErrShuttingDown
	}
	m.sessions[s.ID()] = liveSession{session: s, cancel: cancel}
	m.wg.Add(1)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.sessions, s.ID())
		m.mu.Unlock()
		m.wg.Done()
	}()

	m.logger.Info("session opened", zap.String("session_id", s.ID()))
	err = s.Run(ctx)
	if err != nil {
		m.logger.Warn("session ended with error", zap.String("session_id", s.ID()), zap.Error(err))
	} else {
		m.logger.Info("session closed", zap.String("session_id", s.ID()))
	}
	return err
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ContentChanged tells every live session to resend content that may have
// changed on disk
func (m *Manager) ContentChanged(version int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ls := range m.sessions {
		ls.session.notifyReload()
	}
	m.logger.Debug("content change pushed to sessions",
		zap.Int("version", version), zap.Int("sessions", len(m.sessions)))
}

// Shutdown ends every session and refuses new ones. It waits for the
// sessions to finish tearing down or for ctx to expire.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closing = true
	for _, ls := range m.sessions {
		ls.cancel()
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
