package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/payload-validator/app/controllers"
	"github.com/km-arc/payload-validator/framework/config"
	"github.com/km-arc/payload-validator/framework/http/validation"
	"github.com/km-arc/payload-validator/framework/logging"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newController(t *testing.T, maxBody int64) *controllers.ValidationController {
	t.Helper()
	engine := validation.NewEngine(nil, validation.WithDocsURL("https://example.com/sample"))
	return controllers.NewValidationController(engine, logging.Discard(), maxBody)
}

func postValidate(t *testing.T, c *controllers.ValidationController, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	c.Validate(rr, req)
	return rr
}

const structureBody = `{"status":false,"message":"Invalid payload structure. Please check here: https://example.com/sample for an accepted payload sample","errors":{}}` + "\n"

// ── Validate ─────────────────────────────────────────────────────────────────

func TestValidationController_Validate_Passes(t *testing.T) {
	rr := postValidate(t, newController(t, 0), `{
		"first_name": {"value": "Segun", "rules": "alpha|required"},
		"email": {"value": "segun@example.com", "rules": "email"},
		"phone": {"value": "08175020329", "rules": "number"}
	}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, `{"status":true}`+"\n", rr.Body.String())
}

func TestValidationController_Validate_CollectsErrorsInOrder(t *testing.T) {
	rr := postValidate(t, newController(t, 0), `{
		"phone": {"value": "0817x", "rules": "number"},
		"first_name": {"value": "", "rules": "required|alpha"},
		"email": {"value": "not-an-email", "rules": "email"}
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t,
		`{"status":false,"message":"The given data is invalid","errors":{`+
			`"phone":["phone must be a valid number"],`+
			`"first_name":["first_name field is required","first_name must contain only valid alphabets"],`+
			`"email":["email must be a valid e-mail address"]}}`+"\n",
		rr.Body.String())
}

func TestValidationController_Validate_UnknownRule(t *testing.T) {
	rr := postValidate(t, newController(t, 0), `{"age": {"value": 30, "rules": "Number|Min"}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t,
		`{"status":false,"message":"The given data is invalid","errors":{"age":["Unknown validation rule 'min' detected"]}}`+"\n",
		rr.Body.String())
}

func TestValidationController_Validate_StructuralFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"empty object", `{}`},
		{"malformed json", `{"name": `},
		{"top-level array", `[{"value": "x", "rules": "required"}]`},
		{"missing rules", `{"name": {"value": "x"}}`},
		{"missing value", `{"name": {"rules": "required"}}`},
		{"rules not a string", `{"name": {"value": "x", "rules": ["required"]}}`},
		{"entry not an object", `{"name": "x"}`},
		{"one bad entry among good", `{"a": {"value": "x", "rules": "alpha"}, "b": 1}`},
		{"invalid utf-8", "{\"a\": {\"value\": \"\xff\", \"rules\": \"alpha\"}}"},
	}

	c := newController(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postValidate(t, c, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Equal(t, structureBody, rr.Body.String())
		})
	}
}

func TestValidationController_Validate_NullValueIsPresent(t *testing.T) {
	rr := postValidate(t, newController(t, 0), `{"nickname": {"value": null, "rules": "required"}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), `"nickname":["nickname field is required"]`)
}

func TestValidationController_Validate_BodyTooLarge(t *testing.T) {
	body := `{"name": {"value": "` + strings.Repeat("a", 64) + `", "rules": "alpha"}}`
	rr := postValidate(t, newController(t, 32), body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.JSONEq(t, `{"message": "Payload too large."}`, rr.Body.String())
}

func TestValidationController_Validate_LogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(config.LogConfig{Level: "debug", Format: "json"}, logging.WithOutput(&buf))
	c := controllers.NewValidationController(validation.NewEngine(nil), log, 0)

	postValidate(t, c, `{"name": {"value": "", "rules": "required"}}`)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "payload failed validation", entry["msg"])
	assert.Equal(t, float64(1), entry["errors"])
	assert.Equal(t, []any{"name"}, entry["fields"])
}

// ── Rules & Health ───────────────────────────────────────────────────────────

func TestValidationController_Rules(t *testing.T) {
	rr := httptest.NewRecorder()
	newController(t, 0).Rules(rr, httptest.NewRequest(http.MethodGet, "/api/rules", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data": ["alpha", "email", "number", "required"]}`, rr.Body.String())
}

func TestValidationController_Rules_IncludesCustom(t *testing.T) {
	rules := validation.NewRuleSet().Register("uuid", func(attribute string, value any) (bool, string) {
		return true, ""
	})
	c := controllers.NewValidationController(validation.NewEngine(rules), logging.Discard(), 0)

	rr := httptest.NewRecorder()
	c.Rules(rr, httptest.NewRequest(http.MethodGet, "/api/rules", nil))

	assert.JSONEq(t, `{"data": ["alpha", "email", "number", "required", "uuid"]}`, rr.Body.String())
}

func TestValidationController_Health(t *testing.T) {
	rr := httptest.NewRecorder()
	newController(t, 0).Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rr.Body.String())
}
