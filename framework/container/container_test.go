package container_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/payload-validator/framework/container"
)

type counter struct{ n int }

func TestContainer_Bind_NewInstanceEachMake(t *testing.T) {
	c := container.New()
	c.Bind("counter", func(c *container.Container) any { return &counter{} })

	a := c.Make("counter").(*counter)
	b := c.Make("counter").(*counter)
	assert.NotSame(t, a, b)
}

func TestContainer_Singleton_SameInstance(t *testing.T) {
	c := container.New()
	c.Singleton("counter", func(c *container.Container) any { return &counter{} })

	a := c.Make("counter").(*counter)
	b := c.Make("counter").(*counter)
	assert.Same(t, a, b)
}

func TestContainer_Singleton_BuiltOnceUnderConcurrency(t *testing.T) {
	c := container.New()
	var builds atomic.Int32
	c.Singleton("counter", func(c *container.Container) any {
		builds.Add(1)
		return &counter{}
	})

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Make("counter")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
}

func TestContainer_Singleton_FactoryMayResolveOthers(t *testing.T) {
	c := container.New()
	c.Instance("name", "rules")
	c.Singleton("greeting", func(c *container.Container) any {
		return "hello " + container.Resolve[string](c, "name")
	})

	assert.Equal(t, "hello rules", c.Make("greeting"))
}

func TestContainer_Instance(t *testing.T) {
	c := container.New()
	cfg := &counter{n: 7}
	c.Instance("config", cfg)

	assert.Same(t, cfg, c.Make("config"))
}

func TestContainer_Instance_ReplacesBinding(t *testing.T) {
	c := container.New()
	c.Singleton("svc", func(c *container.Container) any { return "factory" })
	c.Instance("svc", "instance")

	assert.Equal(t, "instance", c.Make("svc"))
}

func TestContainer_Alias(t *testing.T) {
	c := container.New()
	c.Instance("config", "cfg")
	c.Alias("config", "configuration")

	assert.Equal(t, "cfg", c.Make("configuration"))
	assert.True(t, c.Bound("configuration"))
}

func TestContainer_Alias_ToSelfPanics(t *testing.T) {
	c := container.New()
	assert.Panics(t, func() { c.Alias("config", "config") })
}

func TestContainer_Make_UnboundPanics(t *testing.T) {
	c := container.New()
	assert.PanicsWithValue(t, "container: no binding registered for [missing]", func() {
		c.Make("missing")
	})
}

func TestContainer_Bind_NilFactoryPanics(t *testing.T) {
	c := container.New()
	assert.Panics(t, func() { c.Bind("svc", nil) })
}

func TestContainer_SelfBinding(t *testing.T) {
	c := container.New()
	assert.Same(t, c, c.Make("container"))
}

func TestContainer_Forget(t *testing.T) {
	c := container.New()
	c.Instance("svc", 1)
	require.True(t, c.Bound("svc"))

	c.Forget("svc")
	assert.False(t, c.Bound("svc"))
}

func TestContainer_Bindings_Sorted(t *testing.T) {
	c := container.New()
	c.Instance("b", 1)
	c.Bind("a", func(c *container.Container) any { return 2 })

	assert.Equal(t, []string{"a", "b", "container"}, c.Bindings())
}

func TestResolve_Typed(t *testing.T) {
	c := container.New()
	c.Instance("count", 3)

	assert.Equal(t, 3, container.Resolve[int](c, "count"))
	assert.Panics(t, func() { container.Resolve[string](c, "count") })
}

func TestTryResolve(t *testing.T) {
	c := container.New()
	c.Instance("count", 3)

	n, ok := container.TryResolve[int](c, "count")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = container.TryResolve[string](c, "count")
	assert.False(t, ok)

	_, ok = container.TryResolve[int](c, "missing")
	assert.False(t, ok)
}
