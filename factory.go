package vlc

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
)

// Factory owns a libvlc instance and the API wrappers built on it.
type Factory struct {
	config   Config
	lib      *libvlcSymbols
	instance Instance

	apis []API

	application      *ApplicationAPI
	audio            *AudioAPI
	equalizer        *EqualizerAPI
	media            *MediaAPI
	mediaPlayers     *MediaPlayerAPI
	mediaDiscoverers *MediaDiscovererAPI
	renderers        *RendererAPI

	releaseOnce sync.Once
	released    atomic.Bool
}

// NewFactory loads libvlc, creates a native instance and all API wrappers.
// The caller must call Release when done.
func NewFactory(ctx context.Context, opts ...Option) (*Factory, error) {
	cfg := newConfig(opts)

	lib := cfg.symbols
	if lib == nil {
		var err error
		lib, err = loadLibVLC(cfg.LibraryPath)
		if err != nil {
			return nil, err
		}
	}

	logger.Debugf(ctx, "creating a libvlc instance with arguments %q", cfg.Args)
	argv := newCStringArray(cfg.Args)
	handle, errMsg := lib.createOrError(func() uintptr {
		return lib.new(argv.Len(), argv.Pointer())
	})
	argv.Free()
	if handle == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInstanceCreate, errMsg)
	}
	instance := Instance(handle)

	f := &Factory{
		config:   cfg,
		lib:      lib,
		instance: instance,
	}

	if cfg.UserAgentName != "" {
		lib.setUserAgent(uintptr(instance), cfg.UserAgentName, cfg.UserAgentHTTP)
	}
	if cfg.ApplicationID != "" {
		lib.setAppID(uintptr(instance), cfg.ApplicationID, cfg.ApplicationVersion, cfg.ApplicationIcon)
	}

	f.application = newApplicationAPI(f)
	f.audio = newAudioAPI(f)
	f.equalizer = newEqualizerAPI(f)
	f.media = newMediaAPI(f)
	f.mediaPlayers = newMediaPlayerAPI(f)
	f.mediaDiscoverers = newMediaDiscovererAPI(f)
	f.renderers = newRendererAPI(f)
	f.apis = []API{
		f.application,
		f.audio,
		f.equalizer,
		f.media,
		f.mediaPlayers,
		f.mediaDiscoverers,
		f.renderers,
	}

	logger.Debugf(ctx, "created libvlc instance %#x", uintptr(instance))
	return f, nil
}

// Use creates a factory, passes it to fn and releases it when fn returns or
// panics. Errors from fn and from the release are combined.
func Use(
	ctx context.Context,
	fn func(*Factory) error,
	opts ...Option,
) (_err error) {
	f, err := NewFactory(ctx, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Release(ctx); err != nil {
			_err = multierror.Append(_err, err).ErrorOrNil()
		}
	}()
	return fn(f)
}

// Config returns the configuration the factory was created with.
func (f *Factory) Config() Config {
	return f.config
}

// Instance returns the native libvlc instance handle.
func (f *Factory) Instance() Instance {
	return f.instance
}

// Application returns the version, clock and identity API.
func (f *Factory) Application() *ApplicationAPI {
	return f.application
}

// Audio returns the audio output API.
func (f *Factory) Audio() *AudioAPI {
	return f.audio
}

// Equalizer returns the equalizer presets and bands API.
func (f *Factory) Equalizer() *EqualizerAPI {
	return f.equalizer
}

// Media returns the API creating media items.
func (f *Factory) Media() *MediaAPI {
	return f.media
}

// MediaPlayers returns the API creating media players.
func (f *Factory) MediaPlayers() *MediaPlayerAPI {
	return f.mediaPlayers
}

// MediaDiscoverers returns the media discoverer API.
func (f *Factory) MediaDiscoverers() *MediaDiscovererAPI {
	return f.mediaDiscoverers
}

// Renderers returns the renderer discoverer API.
func (f *Factory) Renderers() *RendererAPI {
	return f.renderers
}

// IsReleased reports whether Release was called.
func (f *Factory) IsReleased() bool {
	return f.released.Load()
}

// Release releases every API wrapper, newest first, and then the libvlc
// instance. The instance is released even if a wrapper fails to release.
// Calling Release more than once is a no-op.
func (f *Factory) Release(ctx context.Context) error {
	var result *multierror.Error
	f.releaseOnce.Do(func() {
		logger.Debugf(ctx, "releasing libvlc instance %#x", uintptr(f.instance))
		f.released.Store(true)
		for i := len(f.apis) - 1; i >= 0; i-- {
			if err := f.apis[i].Release(ctx); err != nil {
				result = multierror.Append(result, err)
			}
		}
		f.lib.release(uintptr(f.instance))
	})
	return result.ErrorOrNil()
}
