package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/payload-validator/framework/http/validation"
)

// DefaultMaxBodyBytes caps request bodies read by Body and Payload.
const DefaultMaxBodyBytes = 1 << 20 // 1 MB

var (
	// ErrEmptyBody is returned when a body was expected but none was sent.
	ErrEmptyBody = errors.New("empty request body")

	// ErrBodyTooLarge is returned when the body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw     *http.Request
	maxBody int64
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r, maxBody: DefaultMaxBodyBytes}
}

// WithMaxBodyBytes sets the body size limit; non-positive values are ignored.
func (req *Request) WithMaxBodyBytes(n int64) *Request {
	if n > 0 {
		req.maxBody = n
	}
	return req
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Body ─────────────────────────────────────────────────────────────────────

// Body reads the whole request body, up to the size limit.
func (req *Request) Body() ([]byte, error) {
	if req.raw.Body == nil {
		return nil, ErrEmptyBody
	}
	defer req.raw.Body.Close()

	body, err := io.ReadAll(io.LimitReader(req.raw.Body, req.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > req.maxBody {
		return nil, ErrBodyTooLarge
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	return body, nil
}

// Payload decodes the JSON body into an ordered validation payload,
// Laravel: $request->all() on a JSON request.
func (req *Request) Payload() (*validation.Payload, error) {
	body, err := req.Body()
	if err != nil {
		return nil, err
	}
	return validation.ParsePayload(body)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// BearerToken extracts the token from Authorization: Bearer <token>.
func (req *Request) BearerToken() string {
	auth := req.raw.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// IP returns the client IP (respects RealIP middleware).
func (req *Request) IP() string {
	return req.raw.RemoteAddr
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}
