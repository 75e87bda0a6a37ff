package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/blueprint"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/apierr"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/storage"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondError writes err in the error envelope. Internal errors are logged
// and their message replaced.
func (h *Handler) respondError(c *gin.Context, err error) {
	ae := apierr.From(classify(err))
	msg := ae.Error()
	if ae.Status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
		msg = "internal error"
	}
	c.JSON(ae.Status, ErrorEnvelope{Error: APIError{Message: msg, Code: ae.Code}})
}

// classify maps domain errors onto API errors.
func classify(err error) error {
	var ve *blueprint.ValidationError
	switch {
	case errors.As(err, &ve):
		return apierr.BadRequest(string(ve.Kind), ve)
	case errors.Is(err, storage.ErrInvalidInvite):
		return apierr.NotFound("invalid_invite", err)
	case errors.Is(err, storage.ErrSelfLink):
		return apierr.BadRequest("self_link", err)
	case errors.Is(err, storage.ErrNotLinked):
		return apierr.Conflict("not_linked", err)
	case errors.Is(err, storage.ErrAlreadyLinked):
		return apierr.Conflict("already_linked", err)
	case errors.Is(err, storage.ErrNotFound):
		return apierr.NotFound("not_found", err)
	}
	return err
}

func badRequest(err error) error {
	return apierr.BadRequest("invalid_request", err)
}
