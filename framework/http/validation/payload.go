package validation

import (
	"errors"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Keys every payload entry must carry.
const (
	ValueKey = "value"
	RulesKey = "rules"
)

// ErrNotObject is returned by ParsePayload when the document is not a JSON object.
var ErrNotObject = errors.New("validation: payload is not a JSON object")

// Payload is an ordered attribute → entry mapping.
//
// Entries are kept raw (usually map[string]any) so that CheckStructure can
// reject malformed ones before any rule looks at them. Iteration follows the
// order in which attributes were first set.
type Payload struct {
	keys    []string
	entries map[string]any
}

// NewPayload creates an empty Payload.
func NewPayload() *Payload {
	return &Payload{entries: make(map[string]any)}
}

// Field builds a well-formed entry: {"value": value, "rules": rules}.
//
//	p.Set("email", validation.Field("alice@example.com", "required|email"))
func Field(value any, rules string) map[string]any {
	return map[string]any{ValueKey: value, RulesKey: rules}
}

// Set stores entry under attribute. Re-setting an attribute replaces its
// entry but keeps its original position.
func (p *Payload) Set(attribute string, entry any) *Payload {
	if p.entries == nil {
		p.entries = make(map[string]any)
	}
	if _, exists := p.entries[attribute]; !exists {
		p.keys = append(p.keys, attribute)
	}
	p.entries[attribute] = entry
	return p
}

// Get returns the raw entry stored under attribute.
func (p *Payload) Get(attribute string) (any, bool) {
	if p == nil {
		return nil, false
	}
	entry, ok := p.entries[attribute]
	return entry, ok
}

// Len returns the number of attributes.
func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the attributes in payload order.
func (p *Payload) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Each calls fn for every attribute in payload order.
func (p *Payload) Each(fn func(attribute string, entry any)) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		fn(k, p.entries[k])
	}
}

// ParsePayload decodes a JSON object into a Payload, keeping the document's
// key order. Nested values are decoded into plain Go values (map[string]any,
// []any, float64, string, bool, nil). Invalid UTF-8 is rejected rather than
// replaced.
func ParsePayload(data []byte) (*Payload, error) {
	if !utf8.Valid(data) || !gjson.ValidBytes(data) {
		return nil, ErrNotObject
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrNotObject
	}

	p := NewPayload()
	doc.ForEach(func(key, entry gjson.Result) bool {
		p.Set(key.String(), entry.Value())
		return true
	})
	return p, nil
}
