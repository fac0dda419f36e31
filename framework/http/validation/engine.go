package validation

import (
	"fmt"
	"net/http"
	"strings"
)

// RuleSeparator splits a rule string into rule names.
const RuleSeparator = "|"

// DefaultDocsURL points at a sample of the accepted payload shape.
const DefaultDocsURL = "https://gist.github.com/massivebrains/ccfa887ac62e74f19ddae5844b9d0bac"

// MessageInvalidData is the top-level message of a rule failure.
const MessageInvalidData = "The given data is invalid"

// ── Result ───────────────────────────────────────────────────────────────────

// Kind classifies a Result.
type Kind int

const (
	// KindNone is a successful validation.
	KindNone Kind = iota
	// KindStructure is a payload whose shape was rejected; no rule ran.
	KindStructure
	// KindInvalidData is a payload where at least one rule failed.
	KindInvalidData
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindStructure:
		return "structure"
	case KindInvalidData:
		return "invalid_data"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of Engine.Validate. The zero value is a success.
type Result struct {
	Kind    Kind
	Message string
	Errors  *ErrorBag
}

// Passed reports whether validation succeeded.
func (r Result) Passed() bool { return r.Kind == KindNone }

// Failed reports whether validation failed, for any reason.
func (r Result) Failed() bool { return !r.Passed() }

// StatusCode is the HTTP status a transport should answer with.
func (r Result) StatusCode() int {
	if r.Passed() {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

// Err returns nil on success and an *Error otherwise.
func (r Result) Err() error {
	if r.Passed() {
		return nil
	}
	return &Error{Kind: r.Kind, Message: r.Message, Errors: r.Errors}
}

// ── Engine ───────────────────────────────────────────────────────────────────

// Engine validates payloads against the rules named in them.
// It holds no per-call state, so one Engine serves concurrent callers.
type Engine struct {
	rules   *RuleSet
	docsURL string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDocsURL sets the link included in the structural error message.
func WithDocsURL(url string) EngineOption {
	return func(e *Engine) { e.docsURL = url }
}

// NewEngine creates an Engine dispatching to rules; nil means NewRuleSet().
func NewEngine(rules *RuleSet, opts ...EngineOption) *Engine {
	if rules == nil {
		rules = NewRuleSet()
	}
	e := &Engine{rules: rules, docsURL: DefaultDocsURL}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the RuleSet the engine dispatches to.
func (e *Engine) Rules() *RuleSet { return e.rules }

// StructureMessage is the message of a structural failure.
func (e *Engine) StructureMessage() string {
	if e.docsURL == "" {
		return "Invalid payload structure"
	}
	return fmt.Sprintf("Invalid payload structure. Please check here: %s for an accepted payload sample", e.docsURL)
}

// Validate checks the payload shape, then applies every rule of every
// attribute in payload order. All failures are collected; a shape failure
// stops before any rule runs.
func (e *Engine) Validate(payload *Payload) Result {
	if !CheckStructure(payload) {
		return Result{Kind: KindStructure, Message: e.StructureMessage(), Errors: NewErrorBag()}
	}

	bag := NewErrorBag()
	payload.Each(func(attribute string, entry any) {
		field := entry.(map[string]any)
		value := field[ValueKey]
		for _, rule := range strings.Split(field[RulesKey].(string), RuleSeparator) {
			e.apply(bag, attribute, value, rule)
		}
	})

	if !bag.IsEmpty() {
		return Result{Kind: KindInvalidData, Message: MessageInvalidData, Errors: bag}
	}
	return Result{}
}

func (e *Engine) apply(bag *ErrorBag, attribute string, value any, rule string) {
	fn, ok := e.rules.Resolve(rule)
	if !ok {
		bag.Add(attribute, fmt.Sprintf("Unknown validation rule '%s' detected", CanonicalName(rule)))
		return
	}
	if passed, message := fn(attribute, value); !passed {
		bag.Add(attribute, message)
	}
}

// ── Package-level helper ─────────────────────────────────────────────────────

var defaultEngine = NewEngine(nil)

// Validate runs payload through an Engine with the built-in rules.
func Validate(payload *Payload) Result {
	return defaultEngine.Validate(payload)
}
