package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/blueprint"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/apierr"
)

func (h *Handler) GetQuestions(c *gin.Context) {
	respondOK(c, gin.H{"questions": h.classifier.Questions()})
}

type submitRequest struct {
	Answers models.AnswerSet `json:"answers"`
}

// SubmitBlueprint scores the quiz, stores the result and returns it.
func (h *Handler) SubmitBlueprint(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, badRequest(err))
		return
	}
	profile, err := h.classifier.Score(req.Answers)
	if err != nil {
		var ve *blueprint.ValidationError
		if errors.As(err, &ve) {
			h.metrics.ValidationFailed(string(ve.Kind))
		}
		h.respondError(c, err)
		return
	}
	userID := auth.UserID(c)
	if err := h.store.SaveBlueprint(c.Request.Context(), userID, profile); err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Classified()
	h.log.Info("blueprint classified", "user_id", userID, "primary_type", profile.PrimaryType)
	respondOK(c, gin.H{"profile": profile})
}

func (h *Handler) GetBlueprint(c *gin.Context) {
	profile, err := h.store.GetBlueprint(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if profile == nil {
		h.respondError(c, apierr.NotFound("blueprint_not_found", errors.New("quiz not completed")))
		return
	}
	respondOK(c, gin.H{"profile": profile})
}
