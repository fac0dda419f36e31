package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ── Sentinels ────────────────────────────────────────────────────────────────

var (
	// ErrInvalidStructure marks a payload whose shape was rejected before any rule ran.
	ErrInvalidStructure = errors.New("invalid payload structure")

	// ErrInvalidData marks a payload where one or more rules failed.
	ErrInvalidData = errors.New("the given data is invalid")
)

// ── ValidationError ──────────────────────────────────────────────────────────

// ValidationError is a single attribute/message pair.
type ValidationError struct {
	Attribute string `json:"attribute"`
	Message   string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Attribute + ": " + e.Message
}

// ── ErrorBag ─────────────────────────────────────────────────────────────────

// ErrorBag is an ordered, multi-valued attribute → message collection,
// the counterpart of Laravel's MessageBag.
//
// JSON output groups messages by attribute, attributes in first-seen order:
//
//	{"name": ["name field is required", "name must contain only valid alphabets"]}
type ErrorBag struct {
	items []ValidationError
}

// NewErrorBag returns an empty bag.
func NewErrorBag() *ErrorBag { return &ErrorBag{} }

// Add appends a message for attribute.
func (b *ErrorBag) Add(attribute, message string) {
	b.items = append(b.items, ValidationError{Attribute: attribute, Message: message})
}

// Len returns the total number of messages.
func (b *ErrorBag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// IsEmpty reports whether the bag holds no messages.
func (b *ErrorBag) IsEmpty() bool { return b.Len() == 0 }

// Has reports whether attribute has at least one message.
func (b *ErrorBag) Has(attribute string) bool {
	if b == nil {
		return false
	}
	for _, e := range b.items {
		if e.Attribute == attribute {
			return true
		}
	}
	return false
}

// Get returns the messages for attribute in generation order.
func (b *ErrorBag) Get(attribute string) []string {
	if b == nil {
		return nil
	}
	var out []string
	for _, e := range b.items {
		if e.Attribute == attribute {
			out = append(out, e.Message)
		}
	}
	return out
}

// First returns the first message for attribute, or "".
func (b *ErrorBag) First(attribute string) string {
	if msgs := b.Get(attribute); len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Attributes returns the attributes with messages, in first-seen order.
func (b *ErrorBag) Attributes() []string {
	if b == nil {
		return nil
	}
	var out []string
	seen := make(map[string]struct{}, len(b.items))
	for _, e := range b.items {
		if _, ok := seen[e.Attribute]; ok {
			continue
		}
		seen[e.Attribute] = struct{}{}
		out = append(out, e.Attribute)
	}
	return out
}

// All returns a copy of every entry in generation order.
func (b *ErrorBag) All() []ValidationError {
	if b == nil {
		return nil
	}
	out := make([]ValidationError, len(b.items))
	copy(out, b.items)
	return out
}

// Messages groups the messages by attribute.
func (b *ErrorBag) Messages() map[string][]string {
	out := make(map[string][]string)
	if b == nil {
		return out
	}
	for _, e := range b.items {
		out[e.Attribute] = append(out[e.Attribute], e.Message)
	}
	return out
}

// MarshalJSON renders the grouped form while keeping attribute order,
// which a plain map would lose.
func (b *ErrorBag) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range b.Attributes() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr)
		if err != nil {
			return nil, err
		}
		msgs, err := json.Marshal(b.Get(attr))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msgs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String joins every entry, mostly for logs and test output.
func (b *ErrorBag) String() string {
	parts := make([]string, 0, b.Len())
	for _, e := range b.All() {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// ── Error ────────────────────────────────────────────────────────────────────

// Error is the error view of a failed Result.
type Error struct {
	Kind    Kind
	Message string
	Errors  *ErrorBag
}

func (e *Error) Error() string {
	if e.Errors.IsEmpty() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Errors)
}

// Unwrap exposes ErrInvalidStructure or ErrInvalidData for errors.Is.
func (e *Error) Unwrap() error {
	if e.Kind == KindStructure {
		return ErrInvalidStructure
	}
	return ErrInvalidData
}
