package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"rainfolio.dev/internal/session"
)

// maxMessageSize bounds one client frame; layouts are the largest
const maxMessageSize = 64 << 10

// SessionHandler upgrades page connections into view sessions
type SessionHandler struct {
	manager  *session.Manager
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewSessionHandler creates a SessionHandler accepting the given origins.
// "*" accepts any origin.
func NewSessionHandler(m *session.Manager, allowedOrigins []string, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{
		manager: m,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Connect handles GET /api/session
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an error response
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	conn.SetReadLimit(maxMessageSize)

	if err := h.manager.Serve(r.Context(), conn); err != nil && !errors.Is(err, session.ErrShuttingDown) {
		h.logger.Warn("session failed", zap.Error(err))
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		// same host is always fine
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		for _, o := range allowed {
			if strings.EqualFold(strings.TrimRight(o, "/"), origin) {
				return true
			}
		}
		return false
	}
}
