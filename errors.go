package vlc

import "errors"

var (
	// ErrLibraryNotAvailable is returned when libvlc cannot be loaded.
	ErrLibraryNotAvailable = errors.New("libvlc not available")

	// ErrInstanceCreate is returned when libvlc_new fails.
	ErrInstanceCreate = errors.New("failed to create libvlc instance")

	// ErrReleased is returned by operations on a released wrapper or object.
	ErrReleased = errors.New("already released")

	// ErrMediaCreate is returned when libvlc rejects an MRL or path.
	ErrMediaCreate = errors.New("failed to create media")

	// ErrPlayerCreate is returned when libvlc_media_player_new fails.
	ErrPlayerCreate = errors.New("failed to create media player")

	// ErrDiscovererCreate is returned when no media discoverer service has
	// the requested name.
	ErrDiscovererCreate = errors.New("failed to create media discoverer")
)
