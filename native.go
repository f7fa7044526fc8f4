package vlc

import (
	"runtime"
	"sync"
	"unsafe"
)

// Instance is an opaque libvlc_instance_t pointer. Zero means no instance.
type Instance uintptr

// libvlcSymbols holds the libvlc entry points used by the bindings.
type libvlcSymbols struct {
	new          func(argc int32, argv unsafe.Pointer) uintptr
	release      func(instance uintptr)
	errmsg       func() uintptr
	getVersion   func() uintptr
	getChangeset func() uintptr
	getCompiler  func() uintptr
	clock        func() int64
	free         func(ptr uintptr)
	setUserAgent func(instance uintptr, name, http string)
	setAppID     func(instance uintptr, id, version, icon string)

	audioOutputListGet           func(instance uintptr) uintptr
	audioOutputListRelease       func(list uintptr)
	audioOutputDeviceListGet     func(instance uintptr, aout string) uintptr
	audioOutputDeviceListRelease func(list uintptr)

	equalizerGetPresetCount   func() uint32
	equalizerGetPresetName    func(index uint32) uintptr
	equalizerGetBandCount     func() uint32
	equalizerGetBandFrequency func(index uint32) float32

	mediaNewLocation func(instance uintptr, mrl string) uintptr
	mediaNewPath     func(instance uintptr, path string) uintptr
	mediaGetMRL      func(media uintptr) uintptr
	mediaRelease     func(media uintptr)

	mediaPlayerNew       func(instance uintptr) uintptr
	mediaPlayerSetMedia  func(player, media uintptr)
	mediaPlayerPlay      func(player uintptr) int32
	mediaPlayerStop      func(player uintptr)
	mediaPlayerIsPlaying func(player uintptr) int32
	mediaPlayerRelease   func(player uintptr)

	mediaDiscovererListGet     func(instance uintptr, category int32, services *uintptr) uint64
	mediaDiscovererListRelease func(services uintptr, count uint64)
	mediaDiscovererNew         func(instance uintptr, name string) uintptr
	mediaDiscovererStart       func(discoverer uintptr) int32
	mediaDiscovererStop        func(discoverer uintptr)
	mediaDiscovererIsRunning   func(discoverer uintptr) int32
	mediaDiscovererRelease     func(discoverer uintptr)

	rendererDiscovererListGet     func(instance uintptr, services *uintptr) uint64
	rendererDiscovererListRelease func(services uintptr, count uint64)
}

// Layouts of the libvlc 3.x structs read by the bindings.

// libvlc_audio_output_t
type cAudioOutput struct {
	name        uintptr
	description uintptr
	next        uintptr
}

// libvlc_audio_output_device_t
type cAudioOutputDevice struct {
	next        uintptr
	device      uintptr
	description uintptr
}

// libvlc_media_discoverer_description_t
type cMediaDiscovererDescription struct {
	name     uintptr
	longName uintptr
	category int32
}

// libvlc_rd_description_t
type cRendererDescription struct {
	name     uintptr
	longName uintptr
}

var (
	libvlcMu   sync.Mutex
	libvlcSyms *libvlcSymbols

	openLibVLCFunc = openLibVLC
)

// loadLibVLC loads libvlc once per process. Only a successful load is kept:
// after a failure the next call searches again, with its own libraryPath.
// Once loaded, libraryPath is ignored.
func loadLibVLC(libraryPath string) (*libvlcSymbols, error) {
	libvlcMu.Lock()
	defer libvlcMu.Unlock()
	if libvlcSyms != nil {
		return libvlcSyms, nil
	}
	syms, err := openLibVLCFunc(libraryPath)
	if err != nil {
		return nil, err
	}
	libvlcSyms = syms
	return syms, nil
}

// IsAvailable checks if libvlc can be loaded from the standard locations.
func IsAvailable() bool {
	_, err := loadLibVLC("")
	return err == nil
}

// errorMessage returns the last libvlc error for the calling thread.
func (s *libvlcSymbols) errorMessage() string {
	if s.errmsg == nil {
		return "unknown error"
	}
	msg := cStringToGo(s.errmsg())
	if msg == "" {
		return "unknown error"
	}
	return msg
}

// createOrError runs a constructor returning a native handle. On failure it
// returns the libvlc error message, read on the same OS thread since libvlc
// keeps it per thread.
func (s *libvlcSymbols) createOrError(create func() uintptr) (uintptr, string) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if h := create(); h != 0 {
		return h, ""
	}
	return 0, s.errorMessage()
}

// statusOrError runs a call returning a libvlc status code (0 on success)
// and returns the error message for a non-zero status.
func (s *libvlcSymbols) statusOrError(call func() int32) (bool, string) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if call() == 0 {
		return true, ""
	}
	return false, s.errorMessage()
}

// takeString copies a heap string returned by libvlc and frees it.
func (s *libvlcSymbols) takeString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	str := cStringToGo(ptr)
	s.free(ptr)
	return str
}

func readAudioOutputs(list uintptr) []AudioOutput {
	var result []AudioOutput
	for p := list; p != 0; {
		item := (*cAudioOutput)(unsafe.Pointer(p))
		result = append(result, AudioOutput{
			Name:        cStringToGo(item.name),
			Description: cStringToGo(item.description),
		})
		p = item.next
	}
	return result
}

func readAudioDevices(list uintptr) []AudioDevice {
	var result []AudioDevice
	for p := list; p != 0; {
		item := (*cAudioOutputDevice)(unsafe.Pointer(p))
		result = append(result, AudioDevice{
			ID:          cStringToGo(item.device),
			Description: cStringToGo(item.description),
		})
		p = item.next
	}
	return result
}

// pointerArray views a native array of count pointers.
func pointerArray(array uintptr, count uint64) []uintptr {
	if array == 0 || count == 0 {
		return nil
	}
	return unsafe.Slice((*uintptr)(unsafe.Pointer(array)), count)
}

func readDiscovererDescriptions(array uintptr, count uint64) []DiscovererDescription {
	ptrs := pointerArray(array, count)
	result := make([]DiscovererDescription, 0, len(ptrs))
	for _, p := range ptrs {
		if p == 0 {
			continue
		}
		item := (*cMediaDiscovererDescription)(unsafe.Pointer(p))
		result = append(result, DiscovererDescription{
			Name:     cStringToGo(item.name),
			LongName: cStringToGo(item.longName),
			Category: DiscovererCategory(item.category),
		})
	}
	return result
}

func readRendererDescriptions(array uintptr, count uint64) []RendererDescription {
	ptrs := pointerArray(array, count)
	result := make([]RendererDescription, 0, len(ptrs))
	for _, p := range ptrs {
		if p == 0 {
			continue
		}
		item := (*cRendererDescription)(unsafe.Pointer(p))
		result = append(result, RendererDescription{
			Name:     cStringToGo(item.name),
			LongName: cStringToGo(item.longName),
		})
	}
	return result
}
