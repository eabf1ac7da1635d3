// Package memo caches derived values on the instance that owns them.
//
// A type embeds (or holds) a Cache and exposes each derived value through a
// method that calls Get with a fixed name:
//
//	type Client struct {
//	    memo memo.Cache
//	}
//
//	func (c *Client) Org(ctx context.Context) (map[string]any, error) {
//	    return memo.Get(&c.memo, "org", func() (map[string]any, error) {
//	        return c.fetchOrg(ctx)
//	    })
//	}
//
// The first successful computation is stored and returned on every later
// read. Failed computations are not stored. There is no invalidation; the
// cache lives as long as its owner.
package memo

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache holds memoized values keyed by name. The zero value is ready to use.
// A Cache must not be copied after first use.
//
// Cache is safe for concurrent use. Concurrent first reads of one name share
// a single computation.
type Cache struct {
	mu     sync.RWMutex
	values map[string]any
	group  singleflight.Group
}

// TypeMismatchError is returned when a name is read back as a different type
// than the one it was stored with.
type TypeMismatchError struct {
	Name string
	Got  any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("memo %q holds %T", e.Name, e.Got)
}

// Get returns the value stored under name, calling compute to produce it on
// the first read.
func Get[T any](c *Cache, name string, compute func() (T, error)) (T, error) {
	if v, ok := c.load(name); ok {
		return cast[T](name, v)
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		// Another caller may have finished while we waited to enter Do.
		if v, ok := c.load(name); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.store(name, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return cast[T](name, v)
}

// Computed reports whether name holds a value.
func (c *Cache) Computed(name string) bool {
	_, ok := c.load(name)
	return ok
}

func (c *Cache) load(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[name]
	return v, ok
}

func (c *Cache) store(name string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[name] = v
}

func cast[T any](name string, v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Name: name, Got: v}
	}
	return t, nil
}
