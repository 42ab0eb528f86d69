// README: Conversation turn handler.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smartdrive/internal/modules/chat"
)

// Turner runs one conversation turn. *chat.Service implements it.
type Turner interface {
	Turn(ctx context.Context, sessionID, message string) (*chat.Reply, error)
}

type ChatHandler struct {
	chat Turner
}

func NewChatHandler(turner Turner) *ChatHandler {
	return &ChatHandler{chat: turner}
}

type chatReq struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message"`
}

// Chat handles POST /chat and POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json or missing session_id")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || len(req.SessionID) > 128 {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	reply, err := h.chat.Turn(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		writeChatError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, reply)
}
