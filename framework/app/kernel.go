package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/km-arc/payload-validator/framework/config"
	"github.com/km-arc/payload-validator/framework/container"
	gohttp "github.com/km-arc/payload-validator/framework/http"
	"github.com/km-arc/payload-validator/framework/http/validation"
	"github.com/km-arc/payload-validator/framework/logging"
	"github.com/km-arc/payload-validator/framework/providers"
	"github.com/km-arc/payload-validator/framework/routing"
)

var (
	// ErrServerStart is returned by Run when the listener cannot be opened or fails.
	ErrServerStart = errors.New("failed to start http server")

	// ErrServerShutdown is returned by Run when in-flight requests outlive the shutdown timeout.
	ErrServerShutdown = errors.New("failed to shut down http server gracefully")
)

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly,
// like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// Option customises the core providers before they are registered.
type Option func(*settings)

type settings struct {
	envFiles []string
	cfg      *config.Config
	logOpts  []logging.Option
	rules    map[string]validation.RuleFunc
}

// WithEnvFiles sets the .env files read by the config provider.
func WithEnvFiles(files ...string) Option {
	return func(s *settings) { s.envFiles = append(s.envFiles, files...) }
}

// WithConfig binds cfg instead of reading the environment.
func WithConfig(cfg *config.Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithLogOptions passes options through to the application logger.
func WithLogOptions(opts ...logging.Option) Option {
	return func(s *settings) { s.logOpts = append(s.logOpts, opts...) }
}

// WithRule registers an extra validation rule alongside the built-ins.
func WithRule(name string, fn validation.RuleFunc) Option {
	return func(s *settings) {
		if s.rules == nil {
			s.rules = make(map[string]validation.RuleFunc)
		}
		s.rules[name] = fn
	}
}

// New creates the application and registers the framework core providers.
func New(opts ...Option) *Application {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}
	c.Instance("app", app)

	// Same order as Laravel: config, log, routing, then the deferred validator.
	registry.Register(&providers.ConfigServiceProvider{EnvFiles: s.envFiles, Config: s.cfg})
	registry.Register(&providers.LoggingServiceProvider{Options: s.logOpts})
	registry.Register(&providers.RoutingServiceProvider{})
	registry.Register(&providers.ValidationServiceProvider{Rules: s.rules})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Logger resolves the application *slog.Logger from the container.
func (a *Application) Logger() *slog.Logger {
	return container.Resolve[*slog.Logger](a.Container, "log")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Validator resolves the payload validator from the container.
func (a *Application) Validator() *validation.Engine {
	return container.Resolve[*validation.Engine](a.Container, "validator")
}

// Run boots the application (if needed) and serves HTTP until ctx is done,
// then drains in-flight requests within HTTP_SHUTDOWN_TIMEOUT.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	cfg := a.Config()
	log := a.Logger()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      a.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.Info("server started", slog.String("addr", srv.Addr), slog.String("env", cfg.App.Env))

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Join(ErrServerShutdown, err)
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrServerStart, runErr)
	}
	log.Info("server stopped")
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }

// Controller is an embeddable base for HTTP controllers.
type Controller struct {
	// MaxBodyBytes caps request bodies read through Request(); zero keeps the default.
	MaxBodyBytes int64
}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r).WithMaxBodyBytes(c.MaxBodyBytes)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
