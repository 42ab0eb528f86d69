// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartdrive/internal/modules/chat"
	"smartdrive/internal/modules/quota"
	"smartdrive/internal/modules/slotfill"
	"smartdrive/internal/observability"
)

// apologyMessage is shown when the model cannot be reached or keeps answering badly.
const apologyMessage = "Désolé, je n’arrive pas à répondre pour le moment 😕 Réessaie dans un instant."

type errorResponse struct {
	Error     string `json:"error"`
	Assistant string `json:"assistant,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeChatError maps turn errors to status codes without leaking internal detail.
func writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrMissingSession):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, quota.ErrQuotaExceeded):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, slotfill.ErrTransport), errors.Is(err, slotfill.ErrMalformedReply):
		writeJSON(c, http.StatusBadGateway, errorResponse{Error: "model unavailable", Assistant: apologyMessage})
	default:
		observability.LoggerFromContext(c.Request.Context()).Error("chat turn failed", "err", err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
