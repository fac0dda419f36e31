package validation

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RuleFunc checks one attribute value. It returns ok=false together with the
// message to report; the message is ignored when ok is true.
type RuleFunc func(attribute string, value any) (ok bool, message string)

// FileValue is implemented by uploaded-file values; an empty Path counts as missing.
type FileValue interface {
	Path() string
}

// ── RuleSet ──────────────────────────────────────────────────────────────────

// RuleSet maps rule names to RuleFuncs. Names are matched case-insensitively.
// The zero value is an empty, usable set. A RuleSet is safe for concurrent use.
type RuleSet struct {
	mu    sync.RWMutex
	rules map[string]RuleFunc
}

// NewRuleSet returns a RuleSet holding the built-in rules:
// required, alpha, number and email.
func NewRuleSet() *RuleSet {
	rs := &RuleSet{}
	rs.Register("required", Required)
	rs.Register("alpha", Alpha)
	rs.Register("number", Number)
	rs.Register("email", Email)
	return rs
}

// Register adds fn under name, replacing any rule already registered there.
//
//	rules.Register("uppercase", func(attr string, v any) (bool, string) {
//	    s, ok := v.(string)
//	    return ok && s == strings.ToUpper(s), attr + " must be uppercase"
//	})
func (rs *RuleSet) Register(name string, fn RuleFunc) *RuleSet {
	if fn == nil {
		panic(fmt.Sprintf("validation: nil rule registered for [%s]", name))
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.rules == nil {
		rs.rules = make(map[string]RuleFunc)
	}
	rs.rules[CanonicalName(name)] = fn
	return rs
}

// Resolve looks up the rule registered under name.
func (rs *RuleSet) Resolve(name string) (RuleFunc, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	fn, ok := rs.rules[CanonicalName(name)]
	return fn, ok
}

// Names returns the registered rule names, sorted.
func (rs *RuleSet) Names() []string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	out := make([]string, 0, len(rs.rules))
	for name := range rs.rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy, so callers can add rules without
// touching a shared set.
func (rs *RuleSet) Clone() *RuleSet {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	out := &RuleSet{rules: make(map[string]RuleFunc, len(rs.rules))}
	for name, fn := range rs.rules {
		out.rules[name] = fn
	}
	return out
}

// CanonicalName is the lookup key for a rule name: its lowercase form.
// The same form is used when an unknown rule is reported.
func CanonicalName(name string) string {
	// Casers keep state; one per call.
	return cases.Lower(language.Und).String(name)
}

// ── Built-in rules ───────────────────────────────────────────────────────────

var (
	alphaRegex = regexp.MustCompile(`^[\pL\pM]+$`)

	numericRegex = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?[ \t\n\r\v\f]*$`)

	// *validator.Validate caches parsed tags and is safe for concurrent use.
	emailFilter = validator.New()
)

// trimmed by "required", matching PHP's trim() default set
const blankChars = " \t\n\r\x00\x0B"

// Required fails for nil, blank strings, empty collections and file values
// with an empty path.
func Required(attribute string, value any) (bool, string) {
	if !present(value) {
		return false, attribute + " field is required"
	}
	return true, ""
}

func present(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.Trim(v, blankChars) != ""
	case FileValue:
		return v.Path() != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// Alpha passes strings made only of Unicode letters and marks.
func Alpha(attribute string, value any) (bool, string) {
	s, ok := value.(string)
	if !ok || !alphaRegex.MatchString(s) {
		return false, attribute + " must contain only valid alphabets"
	}
	return true, ""
}

// Number passes integers, floats and numeric strings such as "12", "-1.5",
// " 3e4". Booleans are not numbers.
func Number(attribute string, value any) (bool, string) {
	if !numeric(value) {
		return false, attribute + " must be a valid number"
	}
	return true, ""
}

func numeric(value any) bool {
	switch v := value.(type) {
	case nil, bool:
		return false
	case string:
		return numericRegex.MatchString(v)
	case json.Number:
		return numericRegex.MatchString(v.String())
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Email passes strings (or fmt.Stringers) that are a bare, ASCII-only
// RFC 5322 address passing the practical e-mail filter. The domain is either
// a DNS name with valid label lengths (punycode allowed) or an address
// literal such as [127.0.0.1] or [IPv6:::1]. No DNS lookups are made.
func Email(attribute string, value any) (bool, string) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		return false, attribute + " must be a valid e-mail address"
	}

	if !validEmail(s) {
		return false, attribute + " must be a valid e-mail address"
	}
	return true, ""
}

func validEmail(s string) bool {
	if !isASCII(s) {
		return false
	}

	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]

	if strings.HasPrefix(domain, "[") {
		// Address literals: check the local part against a placeholder domain.
		return validAddrSpec(s[:at]+"@example.com") && validAddressLiteral(domain)
	}

	if !validAddrSpec(s) {
		return false
	}
	_, err := idna.Lookup.ToASCII(domain)
	return err == nil
}

func validAddrSpec(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	return emailFilter.Var(s, "email") == nil
}

// validAddressLiteral accepts "[IPv4]" and "[IPv6:addr]".
func validAddressLiteral(domain string) bool {
	if !strings.HasSuffix(domain, "]") {
		return false
	}
	literal := domain[1 : len(domain)-1]
	if v6, ok := strings.CutPrefix(literal, "IPv6:"); ok {
		return emailFilter.Var(v6, "ipv6") == nil
	}
	return emailFilter.Var(literal, "ipv4") == nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
