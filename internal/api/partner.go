package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/blueprint"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

func (h *Handler) CreateInvite(c *gin.Context) {
	conn, err := h.store.CreateInvite(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"partner": conn})
}

type linkRequest struct {
	Code string `json:"code"`
}

// LinkPartner connects the caller to the owner of an invite code.
func (h *Handler) LinkPartner(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, badRequest(err))
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		h.respondError(c, badRequest(errors.New("code is required")))
		return
	}
	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	conn, err := h.store.LinkPartner(c.Request.Context(), auth.UserID(c), req.Code)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.log.Info("partner linked", "user_id", conn.UserID, "partner_id", conn.PartnerID)
	mem := sess.UpdatePartnerInfo(conn.PartnerID, conn.PartnerName)
	respondOK(c, gin.H{"partner": conn, "memory": mem, "context": newMemoryResponse(mem).Context})
}

func (h *Handler) UnlinkPartner(c *gin.Context) {
	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.store.UnlinkPartner(c.Request.Context(), auth.UserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, newMemoryResponse(sess.RemovePartnerLink()))
}

type partnerBlueprintRequest struct {
	Scores      *models.Scores `json:"scores"`
	PrimaryType string         `json:"primaryType"`
}

// SetPartnerBlueprint stores the caller's prediction of their partner's
// blueprint. A partner's own quiz result still takes precedence on reads.
func (h *Handler) SetPartnerBlueprint(c *gin.Context) {
	var req partnerBlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, badRequest(err))
		return
	}
	pb, err := toPartnerBlueprint(req)
	if err != nil {
		h.respondError(c, badRequest(err))
		return
	}
	if err := h.store.SetPartnerBlueprint(c.Request.Context(), auth.UserID(c), pb); err != nil {
		h.respondError(c, err)
		return
	}
	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	mem, _ := sess.Snapshot()
	respondOK(c, newMemoryResponse(mem))
}

// toPartnerBlueprint accepts scores, a primary type, or both. With scores
// only, the primary type is derived from them.
func toPartnerBlueprint(req partnerBlueprintRequest) (models.PartnerBlueprint, error) {
	pb := models.PartnerBlueprint{IsPredicted: true}
	if req.Scores != nil {
		pb.Scores = *req.Scores
	}
	if req.PrimaryType != "" {
		d, ok := models.ParseDimension(req.PrimaryType)
		if !ok {
			return models.PartnerBlueprint{}, errors.New("unknown primary type " + req.PrimaryType)
		}
		pb.PrimaryType = d
		return pb, nil
	}
	if pb.Scores.Total() == 0 {
		return models.PartnerBlueprint{}, errors.New("scores or primaryType is required")
	}
	pb.PrimaryType = blueprint.PrimaryType(pb.Scores)
	return pb, nil
}
