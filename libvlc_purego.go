//go:build darwin || linux

// libvlc is loaded dynamically at runtime with purego, so the bindings build
// with CGO_ENABLED=0.

package vlc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ebitengine/purego"
)

func openLibVLC(libraryPath string) (*libvlcSymbols, error) {
	paths := getLibVLCPaths(libraryPath)

	var lastErr error
	for _, path := range paths {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = err
			continue
		}
		syms, err := loadLibVLCSymbols(handle)
		if err != nil {
			purego.Dlclose(handle)
			lastErr = err
			continue
		}
		return syms, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrLibraryNotAvailable, lastErr)
	}
	return nil, fmt.Errorf("%w: not found in any standard location", ErrLibraryNotAvailable)
}

func getLibVLCPaths(libraryPath string) []string {
	var paths []string

	libNames := []string{"libvlc.so.5", "libvlc.so"}
	if runtime.GOOS == "darwin" {
		libNames = []string{"libvlc.dylib", "libvlc.5.dylib"}
	}

	if libraryPath != "" {
		paths = append(paths, libraryPath)
	}

	// Environment variable overrides
	if envPath := os.Getenv("LIBVLC_LIB_PATH"); envPath != "" {
		paths = append(paths, envPath)
	}
	if envPath := os.Getenv("VLC_SDK_LIB_PATH"); envPath != "" {
		for _, libName := range libNames {
			paths = append(paths, filepath.Join(envPath, libName))
		}
	}

	var dirs []string
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		dirs = append(dirs,
			exeDir,
			filepath.Join(exeDir, "..", "lib"),
		)
	}
	if buildDir := moduleBuildDir(); buildDir != "" {
		dirs = append(dirs, buildDir)
	}
	for _, dir := range dirs {
		for _, libName := range libNames {
			paths = append(paths, filepath.Join(dir, libName))
		}
	}

	// System paths
	switch runtime.GOOS {
	case "darwin":
		paths = append(paths,
			"libvlc.dylib",
			"/Applications/VLC.app/Contents/MacOS/lib/libvlc.dylib",
			"/usr/local/lib/libvlc.dylib",
			"/opt/homebrew/lib/libvlc.dylib",
		)
	case "linux":
		paths = append(paths,
			"libvlc.so.5",
			"libvlc.so",
			"/usr/local/lib/libvlc.so.5",
			"/usr/lib/libvlc.so.5",
			"/usr/lib/x86_64-linux-gnu/libvlc.so.5",
			"/usr/lib/aarch64-linux-gnu/libvlc.so.5",
		)
	}

	return paths
}

func loadLibVLCSymbols(handle uintptr) (_ret *libvlcSymbols, _err error) {
	// RegisterLibFunc panics on a missing symbol.
	defer func() {
		if r := recover(); r != nil {
			_ret, _err = nil, fmt.Errorf("unable to bind libvlc symbols: %v", r)
		}
	}()

	if _, err := purego.Dlsym(handle, "libvlc_new"); err != nil {
		return nil, errors.New("libvlc_new not exported; not a libvlc library")
	}

	s := &libvlcSymbols{}

	// Core
	purego.RegisterLibFunc(&s.new, handle, "libvlc_new")
	purego.RegisterLibFunc(&s.release, handle, "libvlc_release")
	purego.RegisterLibFunc(&s.errmsg, handle, "libvlc_errmsg")
	purego.RegisterLibFunc(&s.getVersion, handle, "libvlc_get_version")
	purego.RegisterLibFunc(&s.getChangeset, handle, "libvlc_get_changeset")
	purego.RegisterLibFunc(&s.getCompiler, handle, "libvlc_get_compiler")
	purego.RegisterLibFunc(&s.clock, handle, "libvlc_clock")
	purego.RegisterLibFunc(&s.free, handle, "libvlc_free")
	purego.RegisterLibFunc(&s.setUserAgent, handle, "libvlc_set_user_agent")
	purego.RegisterLibFunc(&s.setAppID, handle, "libvlc_set_app_id")

	// Audio outputs
	purego.RegisterLibFunc(&s.audioOutputListGet, handle, "libvlc_audio_output_list_get")
	purego.RegisterLibFunc(&s.audioOutputListRelease, handle, "libvlc_audio_output_list_release")
	purego.RegisterLibFunc(&s.audioOutputDeviceListGet, handle, "libvlc_audio_output_device_list_get")
	purego.RegisterLibFunc(&s.audioOutputDeviceListRelease, handle, "libvlc_audio_output_device_list_release")

	// Equalizer
	purego.RegisterLibFunc(&s.equalizerGetPresetCount, handle, "libvlc_audio_equalizer_get_preset_count")
	purego.RegisterLibFunc(&s.equalizerGetPresetName, handle, "libvlc_audio_equalizer_get_preset_name")
	purego.RegisterLibFunc(&s.equalizerGetBandCount, handle, "libvlc_audio_equalizer_get_band_count")
	purego.RegisterLibFunc(&s.equalizerGetBandFrequency, handle, "libvlc_audio_equalizer_get_band_frequency")

	// Media
	purego.RegisterLibFunc(&s.mediaNewLocation, handle, "libvlc_media_new_location")
	purego.RegisterLibFunc(&s.mediaNewPath, handle, "libvlc_media_new_path")
	purego.RegisterLibFunc(&s.mediaGetMRL, handle, "libvlc_media_get_mrl")
	purego.RegisterLibFunc(&s.mediaRelease, handle, "libvlc_media_release")

	// Media player
	purego.RegisterLibFunc(&s.mediaPlayerNew, handle, "libvlc_media_player_new")
	purego.RegisterLibFunc(&s.mediaPlayerSetMedia, handle, "libvlc_media_player_set_media")
	purego.RegisterLibFunc(&s.mediaPlayerPlay, handle, "libvlc_media_player_play")
	purego.RegisterLibFunc(&s.mediaPlayerStop, handle, "libvlc_media_player_stop")
	purego.RegisterLibFunc(&s.mediaPlayerIsPlaying, handle, "libvlc_media_player_is_playing")
	purego.RegisterLibFunc(&s.mediaPlayerRelease, handle, "libvlc_media_player_release")

	// Media discoverers
	purego.RegisterLibFunc(&s.mediaDiscovererListGet, handle, "libvlc_media_discoverer_list_get")
	purego.RegisterLibFunc(&s.mediaDiscovererListRelease, handle, "libvlc_media_discoverer_list_release")
	purego.RegisterLibFunc(&s.mediaDiscovererNew, handle, "libvlc_media_discoverer_new")
	purego.RegisterLibFunc(&s.mediaDiscovererStart, handle, "libvlc_media_discoverer_start")
	purego.RegisterLibFunc(&s.mediaDiscovererStop, handle, "libvlc_media_discoverer_stop")
	purego.RegisterLibFunc(&s.mediaDiscovererIsRunning, handle, "libvlc_media_discoverer_is_running")
	purego.RegisterLibFunc(&s.mediaDiscovererRelease, handle, "libvlc_media_discoverer_release")

	// Renderer discoverers
	purego.RegisterLibFunc(&s.rendererDiscovererListGet, handle, "libvlc_renderer_discoverer_list_get")
	purego.RegisterLibFunc(&s.rendererDiscovererListRelease, handle, "libvlc_renderer_discoverer_list_release")

	return s, nil
}
