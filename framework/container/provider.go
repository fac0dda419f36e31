package container

import "sync"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other bindings inside Boot().
//
//	type RulesProvider struct{ container.BaseProvider }
//
//	func (p *RulesProvider) Register(app *container.Container) {
//	    app.Singleton("validation.rules", func(c *container.Container) any {
//	        return validation.NewRuleSet()
//	    })
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here; use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(app *Container)

	// Provides returns the abstract keys a deferred provider registers.
	Provides() []string

	// IsDeferred returns true if this provider should be loaded lazily,
	// only when one of its Provides() abstracts is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	loaded     map[ServiceProvider]*sync.Once // deferred providers, loaded once
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		loaded:     make(map[ServiceProvider]*sync.Once),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
// Registering the same provider twice is a no-op.
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return
	}
	r.registered[provider] = true
	booted := r.booted
	if !provider.IsDeferred() {
		r.eager = append(r.eager, provider)
	}
	r.mu.Unlock()

	if provider.IsDeferred() {
		for _, abstract := range provider.Provides() {
			abs := abstract
			r.app.Bind(abs, func(c *Container) any {
				r.loadDeferred(provider)
				return c.Make(abs)
			})
		}
		return
	}

	provider.Register(r.app)
	if booted {
		provider.Boot(r.app)
	}
}

// loadDeferred registers (and, after Boot, boots) a deferred provider the
// first time one of its abstracts is resolved. The provider must rebind every
// abstract it Provides(), otherwise resolution would loop back here.
//
// r.mu is released before Register/Boot run, so those may register providers
// or resolve other deferred abstracts. Concurrent resolvers wait on the once.
func (r *ProviderRegistry) loadDeferred(provider ServiceProvider) {
	r.mu.Lock()
	once, ok := r.loaded[provider]
	if !ok {
		once = new(sync.Once)
		r.loaded[provider] = once
	}
	r.mu.Unlock()

	once.Do(func() {
		provider.Register(r.app)
		if r.Booted() {
			provider.Boot(r.app)
		}
	})
}

// Boot calls Boot() on all eager providers.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot() {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
