package providers

import (
	"log/slog"

	"github.com/km-arc/payload-validator/framework/config"
	"github.com/km-arc/payload-validator/framework/container"
	"github.com/km-arc/payload-validator/framework/http/validation"
	"github.com/km-arc/payload-validator/framework/logging"
	"github.com/km-arc/payload-validator/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Bound abstracts:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string

	// Config, when set, is bound as-is and no environment is read.
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	if p.Config != nil {
		app.Instance("config", p.Config)
	} else {
		envFiles := p.EnvFiles
		app.Singleton("config", func(c *container.Container) any {
			return config.MustLoad(envFiles...)
		})
	}
	app.Alias("config", "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider registers the application logger.
//
// Bound abstracts:
//   - "log"  → *slog.Logger
//
// Laravel equivalent:
//
//	// Illuminate\Log\LogServiceProvider
//	$app->singleton('log', fn($app) => new LogManager($app));
type LoggingServiceProvider struct {
	container.BaseProvider

	// Options are passed through to logging.ForApp.
	Options []logging.Option
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	opts := p.Options
	app.Singleton("log", func(c *container.Container) any {
		return logging.ForApp(container.Resolve[*config.Config](c, "config"), opts...)
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. Requests are logged
// through "log".
//
// Bound abstracts:
//   - "router"  → *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		return routing.New(routing.WithLogger(container.Resolve[*slog.Logger](c, "log")))
	})
}

// ── ValidationServiceProvider ─────────────────────────────────────────────────

// ValidationServiceProvider registers the rule registry and the payload
// validator. It is deferred: nothing is built until one of its abstracts is
// first resolved.
//
// Bound abstracts:
//   - "validation.rules"  → *validation.RuleSet
//   - "validator"         → *validation.Engine
//
// Configuration keys read from "config":
//   - Validation.DocsURL (VALIDATION_DOCS_URL)
//
// Laravel equivalent:
//
//	// Illuminate\Validation\ValidationServiceProvider
//	$app->singleton('validator', fn($app) => new Factory($app['translator'], $app));
type ValidationServiceProvider struct {
	container.BaseProvider

	// Extra rules registered on top of the built-ins, keyed by rule name.
	Rules map[string]validation.RuleFunc
}

func (p *ValidationServiceProvider) Register(app *container.Container) {
	extra := p.Rules
	app.Singleton("validation.rules", func(c *container.Container) any {
		rules := validation.NewRuleSet()
		for name, fn := range extra {
			rules.Register(name, fn)
		}
		return rules
	})
	app.Singleton("validator", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return validation.NewEngine(
			container.Resolve[*validation.RuleSet](c, "validation.rules"),
			validation.WithDocsURL(cfg.Validation.DocsURL),
		)
	})
}

func (p *ValidationServiceProvider) IsDeferred() bool { return true }

func (p *ValidationServiceProvider) Provides() []string {
	return []string{"validation.rules", "validator"}
}
