package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

const titleWords = 6

func (h *Handler) ListSuggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.store.ListSuggestions(c.Request.Context(), auth.UserID(c), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"suggestions": list})
}

// GenerateSuggestions asks for a fresh personalized batch and stores it.
func (h *Handler) GenerateSuggestions(c *gin.Context) {
	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	mem, _ := sess.Snapshot()
	texts, source := h.suggest.GenerateSuggestions(c.Request.Context(), mem)

	category := "general"
	if mem.Blueprint != nil {
		category = strings.ToLower(string(mem.Blueprint.PrimaryType))
	}
	batch := make([]models.Suggestion, len(texts))
	for i, text := range texts {
		batch[i] = models.Suggestion{
			UserID:   mem.UserID,
			Category: category,
			Title:    titleOf(text),
			Content:  text,
		}
	}
	saved, err := h.store.SaveSuggestions(c.Request.Context(), batch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"suggestions": saved, "source": source})
}

func (h *Handler) MarkSuggestionRead(c *gin.Context) {
	if err := h.store.MarkSuggestionRead(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": c.Param("id"), "isRead": true})
}

func (h *Handler) MarkSuggestionApplied(c *gin.Context) {
	if err := h.store.MarkSuggestionApplied(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": c.Param("id"), "isApplied": true})
}

func titleOf(text string) string {
	words := strings.Fields(text)
	if len(words) <= titleWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:titleWords], " ") + "..."
}
