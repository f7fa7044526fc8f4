// Package vlc provides Go bindings for libvlc, the native VLC media engine.
//
// A Factory owns one libvlc instance. It hands out thin API wrappers, one per
// slice of the libvlc C API, each holding a back-reference to the factory and
// a snapshot of its instance handle:
//
//   - ApplicationAPI: version, clock, user agent and application id
//   - AudioAPI: audio outputs and their devices
//   - EqualizerAPI: equalizer presets and bands
//   - MediaAPI: media items created from MRLs or local paths
//   - MediaPlayerAPI: media players
//   - MediaDiscovererAPI: discoverer services and running discoverers
//   - RendererAPI: renderer discoverer services
//
// # Lifecycle
//
// Every wrapper implements Release. Release is idempotent: the first call
// frees whatever the wrapper acquired, later calls are no-ops, and any other
// operation on a released wrapper returns ErrReleased. Factory.Release
// releases all wrappers (and the media, players and discoverers they created)
// before the libvlc instance itself, so a wrapper never outlives the handle it
// holds. Use wraps the whole thing in a scope:
//
//	err := vlc.Use(ctx, func(f *vlc.Factory) error {
//		v, err := f.Application().Version()
//		...
//	}, vlc.WithArgs("--no-video"))
//
// # Native Library
//
// libvlc is loaded at runtime with purego, so no C toolchain is needed.
// Set LIBVLC_LIB_PATH to the library file, or VLC_SDK_LIB_PATH to the
// directory containing it, to override the search. The library is loaded once
// per process: the WithLibraryPath of the first successful load wins, and a
// failed search (including one made by IsAvailable) is retried on the next
// NewFactory.
//
// Only Linux and macOS are supported. On other platforms NewFactory returns
// ErrLibraryNotAvailable.
package vlc
