package vlc

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
)

// API is a wrapper around one slice of the libvlc API.
//
// A wrapper holds a non-owning reference to the Factory it was created from
// and a snapshot of the factory's Instance. The factory must outlive it;
// Factory.Release takes care of that by releasing every wrapper first.
type API interface {
	// Factory returns the factory the wrapper was created from.
	Factory() *Factory

	// Instance returns the libvlc instance snapshot taken at construction.
	Instance() Instance

	// Release frees whatever native resources the wrapper acquired. It is
	// idempotent and safe for concurrent use.
	Release(ctx context.Context) error

	// IsReleased reports whether Release was called.
	IsReleased() bool
}

// baseAPI is embedded by every API wrapper. It does not implement Release:
// each wrapper states its own teardown and calls baseAPI.release with it.
type baseAPI struct {
	name     string
	factory  *Factory
	instance Instance

	releaseOnce sync.Once
	released    atomic.Bool
}

// init binds the wrapper to the factory. A nil factory or a factory without
// an instance is a programming error.
func (a *baseAPI) init(factory *Factory, name string) {
	if factory == nil {
		panic(fmt.Sprintf("vlc: %s API constructed with a nil factory", name))
	}
	if factory.instance == 0 {
		panic(fmt.Sprintf("vlc: %s API constructed from a factory without a libvlc instance", name))
	}
	a.name = name
	a.factory = factory
	a.instance = factory.instance
}

func (a *baseAPI) Factory() *Factory {
	return a.factory
}

func (a *baseAPI) Instance() Instance {
	return a.instance
}

func (a *baseAPI) IsReleased() bool {
	return a.released.Load()
}

func (a *baseAPI) lib() *libvlcSymbols {
	return a.factory.lib
}

// checkLive returns ErrReleased once the wrapper is released.
func (a *baseAPI) checkLive() error {
	if a.released.Load() {
		return fmt.Errorf("%s API: %w", a.name, ErrReleased)
	}
	return nil
}

// release runs teardown on the first call only. The wrapper is marked
// released before teardown starts so that concurrent operations fail fast.
func (a *baseAPI) release(
	ctx context.Context,
	teardown func(context.Context) error,
) error {
	var err error
	a.releaseOnce.Do(func() {
		logger.Debugf(ctx, "releasing the %s API", a.name)
		a.released.Store(true)
		if teardown != nil {
			err = teardown(ctx)
		}
		logger.Tracef(ctx, "released the %s API: %v", a.name, err)
	})
	return err
}

type releasable interface {
	comparable
	Release(ctx context.Context) error
}

// releaseHolder tracks live native objects created by a wrapper so they can
// be released along with it.
// Once releaseAll has run the holder is closed and rejects new items.
type releaseHolder[T releasable] struct {
	mu     sync.Mutex
	items  []T
	closed bool
}

// add tracks item. It returns false if the holder is closed; the caller then
// owns item and must free it.
func (h *releaseHolder[T]) add(item T) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.items = append(h.items, item)
	return true
}

func (h *releaseHolder[T]) remove(item T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, cur := range h.items {
		if cur == item {
			h.items = append(h.items[:i], h.items[i+1:]...)
			return
		}
	}
}

func (h *releaseHolder[T]) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// releaseAll closes the holder and releases every tracked item, newest first.
func (h *releaseHolder[T]) releaseAll(ctx context.Context) error {
	h.mu.Lock()
	items := h.items
	h.items = nil
	h.closed = true
	h.mu.Unlock()

	var result *multierror.Error
	for i := len(items) - 1; i >= 0; i-- {
		if err := items[i].Release(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// nativeObject is the lifecycle shared by Media, MediaPlayer and
// MediaDiscoverer: a handle freed exactly once.
type nativeObject struct {
	kind   string
	handle uintptr

	releaseOnce sync.Once
	released    atomic.Bool
}

func (o *nativeObject) Handle() uintptr {
	return o.handle
}

func (o *nativeObject) IsReleased() bool {
	return o.released.Load()
}

func (o *nativeObject) checkLive() error {
	if o.released.Load() {
		return fmt.Errorf("%s: %w", o.kind, ErrReleased)
	}
	return nil
}

func (o *nativeObject) release(ctx context.Context, free func()) {
	o.releaseOnce.Do(func() {
		logger.Tracef(ctx, "releasing %s %#x", o.kind, o.handle)
		o.released.Store(true)
		free()
	})
}
