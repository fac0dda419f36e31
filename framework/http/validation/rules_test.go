package validation_test

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/payload-validator/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

type fileStub struct{ path string }

func (f fileStub) Path() string { return f.path }

type stringerStub struct{ s string }

func (s stringerStub) String() string { return s.s }

// pass asserts the rule accepts value.
func pass(t *testing.T, rule validation.RuleFunc, label string, value any) {
	t.Helper()
	t.Run("pass/"+label, func(t *testing.T) {
		ok, _ := rule("field", value)
		assert.True(t, ok, "expected PASS for %#v", value)
	})
}

// fail asserts the rule rejects value with want.
func fail(t *testing.T, rule validation.RuleFunc, label string, value any, want string) {
	t.Helper()
	t.Run("fail/"+label, func(t *testing.T) {
		ok, msg := rule("field", value)
		assert.False(t, ok, "expected FAIL for %#v", value)
		assert.Equal(t, want, msg)
	})
}

// ── required ─────────────────────────────────────────────────────────────────

func TestRequired(t *testing.T) {
	const msg = "field field is required"

	pass(t, validation.Required, "string", "Alice")
	pass(t, validation.Required, "zero int", 0)
	pass(t, validation.Required, "false", false)
	pass(t, validation.Required, "non-empty slice", []any{1})
	pass(t, validation.Required, "non-empty map", map[string]any{"a": 1})
	pass(t, validation.Required, "file with path", fileStub{path: "/tmp/upload"})

	fail(t, validation.Required, "nil", nil, msg)
	fail(t, validation.Required, "empty string", "", msg)
	fail(t, validation.Required, "whitespace only", " \t\n ", msg)
	fail(t, validation.Required, "empty slice", []any{}, msg)
	fail(t, validation.Required, "nil slice", []string(nil), msg)
	fail(t, validation.Required, "empty map", map[string]any{}, msg)
	fail(t, validation.Required, "file without path", fileStub{}, msg)
}

// ── alpha ────────────────────────────────────────────────────────────────────

func TestAlpha(t *testing.T) {
	const msg = "field must contain only valid alphabets"

	pass(t, validation.Alpha, "ascii", "Alice")
	pass(t, validation.Alpha, "accented", "Zoë")
	pass(t, validation.Alpha, "non-latin", "日本語")

	fail(t, validation.Alpha, "digits", "Alice1", msg)
	fail(t, validation.Alpha, "space", "two words", msg)
	fail(t, validation.Alpha, "dash", "a-b", msg)
	fail(t, validation.Alpha, "empty", "", msg)
	fail(t, validation.Alpha, "number", 42, msg)
	fail(t, validation.Alpha, "nil", nil, msg)
}

// ── number ───────────────────────────────────────────────────────────────────

func TestNumber(t *testing.T) {
	const msg = "field must be a valid number"

	pass(t, validation.Number, "int", 12)
	pass(t, validation.Number, "float", 1.5)
	pass(t, validation.Number, "uint8", uint8(3))
	pass(t, validation.Number, "json number", json.Number("7"))
	pass(t, validation.Number, "integer string", "12")
	pass(t, validation.Number, "negative decimal string", "-1.5")
	pass(t, validation.Number, "leading dot", ".5")
	pass(t, validation.Number, "exponent with spaces", " 3e4 ")

	fail(t, validation.Number, "trailing letter", "12x", msg)
	fail(t, validation.Number, "empty", "", msg)
	fail(t, validation.Number, "word", "abc", msg)
	fail(t, validation.Number, "hex", "0x1A", msg)
	fail(t, validation.Number, "lonely dot", ".", msg)
	fail(t, validation.Number, "dangling exponent", "1e", msg)
	fail(t, validation.Number, "bool", true, msg)
	fail(t, validation.Number, "nil", nil, msg)
}

// ── email ────────────────────────────────────────────────────────────────────

func TestEmail(t *testing.T) {
	const msg = "field must be a valid e-mail address"

	pass(t, validation.Email, "simple", "a@b.com")
	pass(t, validation.Email, "subdomain", "user@mail.example.co.uk")
	pass(t, validation.Email, "plus tag", "user+tag@example.com")
	pass(t, validation.Email, "stringer", stringerStub{s: "alice@example.com"})
	pass(t, validation.Email, "punycode domain", "user@xn--bcher-kva.example")
	pass(t, validation.Email, "ipv4 literal", "a@[127.0.0.1]")
	pass(t, validation.Email, "ipv6 literal", "a@[IPv6:2001:db8::1]")

	fail(t, validation.Email, "no at sign", "notanemail", msg)
	fail(t, validation.Email, "no domain", "user@", msg)
	fail(t, validation.Email, "double at", "user@@example.com", msg)
	fail(t, validation.Email, "display name", "Alice <alice@example.com>", msg)
	fail(t, validation.Email, "space in local part", "a b@example.com", msg)
	fail(t, validation.Email, "empty", "", msg)
	fail(t, validation.Email, "number", 42, msg)
	fail(t, validation.Email, "nil", nil, msg)

	fail(t, validation.Email, "non-ascii local part", "jörg@example.com", msg)
	fail(t, validation.Email, "non-ascii domain", "a@exämple.com", msg)
	fail(t, validation.Email, "label over 63 chars", "a@"+strings.Repeat("a", 64)+".com", msg)
	fail(t, validation.Email, "bad ipv4 literal", "a@[999.0.0.1]", msg)
	fail(t, validation.Email, "ipv6 literal without tag", "a@[2001:db8::1]", msg)
	fail(t, validation.Email, "unterminated literal", "a@[127.0.0.1", msg)
	fail(t, validation.Email, "literal with bad local part", "a b@[127.0.0.1]", msg)
}

// ── RuleSet ──────────────────────────────────────────────────────────────────

func TestRuleSet_BuiltIns(t *testing.T) {
	rs := validation.NewRuleSet()
	assert.Equal(t, []string{"alpha", "email", "number", "required"}, rs.Names())
}

func TestRuleSet_ResolveIsCaseInsensitive(t *testing.T) {
	rs := validation.NewRuleSet()

	for _, name := range []string{"required", "Required", "REQUIRED", "rEqUiReD"} {
		fn, ok := rs.Resolve(name)
		require.True(t, ok, name)
		passed, msg := fn("name", "")
		assert.False(t, passed)
		assert.Equal(t, "name field is required", msg)
	}
}

func TestRuleSet_ResolveMiss(t *testing.T) {
	rs := validation.NewRuleSet()

	_, ok := rs.Resolve("bogus")
	assert.False(t, ok)

	_, ok = rs.Resolve("")
	assert.False(t, ok)

	_, ok = rs.Resolve(" required")
	assert.False(t, ok, "names are not trimmed")
}

func TestRuleSet_Register(t *testing.T) {
	rs := validation.NewRuleSet()
	rs.Register("Uppercase", func(attr string, v any) (bool, string) {
		s, ok := v.(string)
		return ok && s == "ABC", attr + " must be uppercase"
	})

	fn, ok := rs.Resolve("uppercase")
	require.True(t, ok)
	passed, _ := fn("code", "ABC")
	assert.True(t, passed)
	assert.Contains(t, rs.Names(), "uppercase")
}

func TestRuleSet_RegisterNilPanics(t *testing.T) {
	assert.Panics(t, func() { validation.NewRuleSet().Register("x", nil) })
}

func TestRuleSet_CloneIsIndependent(t *testing.T) {
	base := validation.NewRuleSet()
	clone := base.Clone()
	clone.Register("extra", func(string, any) (bool, string) { return true, "" })

	_, inClone := clone.Resolve("extra")
	_, inBase := base.Resolve("extra")
	assert.True(t, inClone)
	assert.False(t, inBase)
}

func TestRuleSet_ZeroValue(t *testing.T) {
	var rs validation.RuleSet
	_, ok := rs.Resolve("required")
	assert.False(t, ok)
	assert.Empty(t, rs.Names())

	rs.Register("required", validation.Required)
	_, ok = rs.Resolve("REQUIRED")
	assert.True(t, ok)
}

func TestRuleSet_ConcurrentResolve(t *testing.T) {
	rs := validation.NewRuleSet()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = rs.Resolve("email")
			_ = rs.Names()
		}()
	}
	wg.Wait()
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "bogus", validation.CanonicalName("BoGuS"))
	assert.Equal(t, "", validation.CanonicalName(""))
}
