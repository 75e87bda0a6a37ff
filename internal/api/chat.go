package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/apierr"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/suggest"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply  string        `json:"reply"`
	Source models.Source `json:"source"`
}

// Chat answers one message as the assistant and appends both turns to the
// stored conversation.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, badRequest(err))
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		h.respondError(c, apierr.BadRequest("empty_message", errors.New("message is required")))
		return
	}
	ctx := c.Request.Context()
	userID := auth.UserID(c)

	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	history, err := h.store.RecentChat(ctx, userID, suggest.ChatHistoryLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	mem, _ := sess.Snapshot()
	res := h.suggest.Chat(ctx, mem, history, req.Message)

	now := h.now().UTC()
	if err := h.store.AppendChat(ctx, userID,
		models.ChatMessage{Role: models.RoleUser, Content: req.Message, Timestamp: now},
		models.ChatMessage{Role: models.RoleAssistant, Content: res.Text, Timestamp: now},
	); err != nil {
		// history is best effort
		h.log.Warn("append chat failed", "user_id", userID, "error", err)
	}
	respondOK(c, chatResponse{Reply: res.Text, Source: res.Source})
}
