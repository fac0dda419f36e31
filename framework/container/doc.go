// Package container provides a Laravel-compatible IoC (Inversion of Control)
// container and Service Provider system for Go.
//
// # Overview
//
// The container manages the instantiation and lifecycle of the application's
// services: configuration, logger, router, rule registry and validator. It
// supports transient bindings, singletons, pre-built instances and aliases.
//
// Because Go has no runtime constructor reflection, auto-wiring is replaced
// by explicit factory functions.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&providers.ConfigServiceProvider{})
//  3. Boot: registry.Boot()        (safe to resolve everything after this)
//  4. Serve requests
//
// # Bindings
//
//	// Transient: new instance every Make()
//	c.Bind("validation.rules", func(c *container.Container) any {
//	    return validation.NewRuleSet()
//	})
//
//	// Singleton: created once, reused, safe under concurrent Make()
//	c.Singleton("validator", func(c *container.Container) any {
//	    return validation.NewEngine(container.Resolve[*validation.RuleSet](c, "validation.rules"))
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("config", "configuration")
//
// # Resolving
//
//	raw := c.Make("validator")
//	engine := container.Resolve[*validation.Engine](c, "validator")
//	engine, ok := container.TryResolve[*validation.Engine](c, "validator")
//
// # Deferred providers
//
// A provider whose IsDeferred() returns true is not registered until one of
// the abstracts listed in Provides() is first resolved.
package container
