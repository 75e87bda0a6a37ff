package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
)

type spicinessRequest struct {
	Level *int `json:"level"`
}

// UpdateSpiciness stores the caller's preferred tier. Out-of-range levels
// are clamped, not rejected.
func (h *Handler) UpdateSpiciness(c *gin.Context) {
	var req spicinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, badRequest(err))
		return
	}
	if req.Level == nil {
		h.respondError(c, badRequest(errors.New("level is required")))
		return
	}
	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	level, err := h.store.UpdateSpiciness(c.Request.Context(), auth.UserID(c), *req.Level)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, newMemoryResponse(sess.UpdateSpicinessLevel(level)))
}

type moodRequest struct {
	Mood   string `json:"mood"`
	Libido int    `json:"libido"`
}

func (h *Handler) UpdateMood(c *gin.Context) {
	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, badRequest(err))
		return
	}
	req.Mood = strings.TrimSpace(req.Mood)
	if req.Mood == "" {
		h.respondError(c, badRequest(errors.New("mood is required")))
		return
	}
	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	mem := sess.UpdateMood(req.Mood, req.Libido)
	if err := h.store.RecordMood(c.Request.Context(), auth.UserID(c), *mem.Mood); err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, newMemoryResponse(mem))
}

type profileRequest struct {
	Gender   string `json:"gender"`
	Identity string `json:"identity"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, badRequest(err))
		return
	}
	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	gender, identity := strings.TrimSpace(req.Gender), strings.TrimSpace(req.Identity)
	if err := h.store.UpdateIdentity(c.Request.Context(), auth.UserID(c), gender, identity); err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, newMemoryResponse(sess.UpdateIdentity(gender, identity)))
}
