package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/suggest"
)

func (h *Handler) GetTopics(c *gin.Context) {
	respondOK(c, gin.H{"topics": suggest.Topics, "spicinessLevels": suggest.SpicinessLevels})
}

type ideaRequest struct {
	Topic string `json:"topic"`
	// Spiciness overrides the stored preference for this idea only.
	Spiciness int `json:"spiciness"`
}

type ideaResponse struct {
	Topic     string        `json:"topic"`
	Spiciness int           `json:"spiciness"`
	Idea      string        `json:"idea"`
	Source    models.Source `json:"source"`
}

// GenerateIdea returns one boudoir idea. It never fails on the AI path;
// fallback ideas are marked by source.
func (h *Handler) GenerateIdea(c *gin.Context) {
	var req ideaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, badRequest(err))
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		h.respondError(c, badRequest(errors.New("topic is required")))
		return
	}
	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	mem, _ := sess.Snapshot()
	spiciness := req.Spiciness
	if spiciness == 0 {
		spiciness = mem.SpicinessLevel
	}
	spiciness = models.ClampSpiciness(spiciness)

	res := h.suggest.GenerateIdea(c.Request.Context(), suggest.IdeaRequest{
		Topic:     req.Topic,
		Spiciness: spiciness,
		Memory:    mem,
	})
	respondOK(c, ideaResponse{Topic: req.Topic, Spiciness: spiciness, Idea: res.Text, Source: res.Source})
}
