package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	foundation "github.com/km-arc/payload-validator/framework/app"
	gohttp "github.com/km-arc/payload-validator/framework/http"
	"github.com/km-arc/payload-validator/framework/http/validation"
)

// ValidationController serves the payload validation endpoints.
type ValidationController struct {
	foundation.Controller

	engine *validation.Engine
	log    *slog.Logger
}

// NewValidationController builds a controller around engine. Bodies larger
// than maxBodyBytes are rejected with 413; zero keeps the request default.
func NewValidationController(engine *validation.Engine, log *slog.Logger, maxBodyBytes int64) *ValidationController {
	return &ValidationController{
		Controller: foundation.Controller{MaxBodyBytes: maxBodyBytes},
		engine:     engine,
		log:        log,
	}
}

// Validate handles POST /api/validate.
//
// A body that is empty, not JSON, or not a JSON object is validated as an
// empty payload, which fails the structure check.
func (c *ValidationController) Validate(w http.ResponseWriter, r *http.Request) {
	req := c.Request(r)
	res := c.Response(w)

	payload, err := req.Payload()
	switch {
	case errors.Is(err, gohttp.ErrBodyTooLarge):
		c.log.InfoContext(r.Context(), "payload rejected", slog.String("reason", err.Error()))
		res.Error(http.StatusRequestEntityTooLarge, "Payload too large.")
		return
	case err != nil:
		c.log.DebugContext(r.Context(), "unreadable payload", slog.String("error", err.Error()))
		payload = nil
	}

	result := c.engine.Validate(payload)
	switch result.Kind {
	case validation.KindStructure:
		c.log.InfoContext(r.Context(), "invalid payload structure")
	case validation.KindInvalidData:
		c.log.DebugContext(r.Context(), "payload failed validation",
			slog.Int("errors", result.Errors.Len()),
			slog.Any("fields", result.Errors.Attributes()),
		)
	default:
		c.log.DebugContext(r.Context(), "payload passed validation", slog.Int("attributes", payload.Len()))
	}

	res.Validated(result)
}

// Rules handles GET /api/rules and lists the registered rule names.
func (c *ValidationController) Rules(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(c.engine.Rules().Names())
}

// Health handles GET /health.
func (c *ValidationController) Health(w http.ResponseWriter, r *http.Request) {
	c.Response(w).JSON(http.StatusOK, map[string]string{"status": "ok"})
}
