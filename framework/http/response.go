package http

import (
	"encoding/json"
	"net/http"

	"github.com/km-arc/payload-validator/framework/http/validation"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with Laravel-style helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusRequestEntityTooLarge, "Payload too large.")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, first(message, "Server Error."))
}

// validationBody is the wire shape of a validation outcome.
type validationBody struct {
	Status  bool                 `json:"status"`
	Message string               `json:"message,omitempty"`
	Errors  *validation.ErrorBag `json:"errors,omitempty"`
}

// Validated renders a validation result:
//
//	200 {"status": true}
//	422 {"status": false, "message": "...", "errors": {"field": ["msg"]}}
func (res *Response) Validated(result validation.Result) {
	if result.Passed() {
		res.JSON(http.StatusOK, validationBody{Status: true})
		return
	}

	bag := result.Errors
	if bag == nil {
		bag = validation.NewErrorBag()
	}
	res.JSON(result.StatusCode(), validationBody{
		Status:  false,
		Message: result.Message,
		Errors:  bag,
	})
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
