// README: Session handlers (mint a key, inspect state).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartdrive/internal/modules/session"
	"smartdrive/internal/modules/slots"
)

type SessionHandler struct {
	sessions *session.Store
}

func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{sessions: store}
}

type sessionResp struct {
	SessionID string      `json:"session_id"`
	Slots     slots.Slots `json:"slots"`
	LastAsked slots.Name  `json:"last_asked,omitempty"`
	Turns     int         `json:"turns"`
}

func toSessionResp(s session.Session) sessionResp {
	return sessionResp{SessionID: s.Key, Slots: s.Slots, LastAsked: s.LastAsked, Turns: s.Turns}
}

// Create handles POST /api/sessions for clients that do not mint their own keys.
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.sessions.GetOrCreate(uuid.NewString())
	writeJSON(c, http.StatusCreated, toSessionResp(s))
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" || len(id) > 128 {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	s, ok := h.sessions.Lookup(id)
	if !ok {
		writeError(c, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(c, http.StatusOK, toSessionResp(s))
}
