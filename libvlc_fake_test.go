package vlc

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/stretchr/testify/require"
)

// fakeLibVLC is an in-process stand-in for libvlc. Native structs and
// strings are laid out in Go memory kept alive by keep.
type fakeLibVLC struct {
	mu sync.Mutex

	nextHandle uintptr
	keep       []any

	// behaviour
	failNew        bool
	failMedia      bool
	failPlayer     bool
	failPlay       bool
	failDiscStart  bool
	lastError      string
	version        string
	changeset      string
	compiler       string
	clockMicros    int64
	outputs        []AudioOutput
	devices        map[string][]AudioDevice
	presets        []string
	bands          []float32
	discoverers    map[DiscovererCategory][]DiscovererDescription
	rendererDescrs []RendererDescription

	// beforeCreate, if set, runs outside the fake's lock at the start of
	// the media, player and discoverer constructors.
	beforeCreate func(kind string)

	// observations
	args           []string
	instance       uintptr
	calls          []string
	freed          []uintptr
	openLists      int
	userAgent      [2]string
	appID          [3]string
	presetReads    int
	playing        map[uintptr]bool
	running        map[uintptr]bool
	playerMedia    map[uintptr]uintptr
	mediaMRL       map[uintptr]string
	liveObjects    map[uintptr]string
	releaseCounter map[string]int
}

func newFakeLibVLC() *fakeLibVLC {
	return &fakeLibVLC{
		nextHandle:     0x1000,
		version:        "3.0.20 Vetinari",
		changeset:      "3.0.20-0-g6f0d0ab126b",
		compiler:       "gcc version 12.2.0",
		clockMicros:    1_500_000,
		devices:        map[string][]AudioDevice{},
		discoverers:    map[DiscovererCategory][]DiscovererDescription{},
		playing:        map[uintptr]bool{},
		running:        map[uintptr]bool{},
		playerMedia:    map[uintptr]uintptr{},
		mediaMRL:       map[uintptr]string{},
		liveObjects:    map[uintptr]string{},
		releaseCounter: map[string]int{},
	}
}

func (f *fakeLibVLC) newHandle(kind string) uintptr {
	f.nextHandle += 0x10
	f.liveObjects[f.nextHandle] = kind
	return f.nextHandle
}

func (f *fakeLibVLC) dropHandle(kind string, h uintptr) {
	f.calls = append(f.calls, fmt.Sprintf("%s_release %#x", kind, h))
	f.releaseCounter[kind]++
	delete(f.liveObjects, h)
}

func (f *fakeLibVLC) cstr(s string) uintptr {
	b := append([]byte(s), 0)
	f.keep = append(f.keep, b)
	return uintptr(unsafe.Pointer(&b[0]))
}

func (f *fakeLibVLC) hookCreate(kind string) {
	if f.beforeCreate != nil {
		f.beforeCreate(kind)
	}
}

func (f *fakeLibVLC) fail(msg string) {
	f.lastError = msg
}

// Calls returns a copy of the recorded native calls.
func (f *fakeLibVLC) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeLibVLC) ReleaseCount(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releaseCounter[kind]
}

func (f *fakeLibVLC) LiveObjects() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.liveObjects)
}

func (f *fakeLibVLC) symbols() *libvlcSymbols {
	return &libvlcSymbols{
		new: func(argc int32, argv unsafe.Pointer) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.args = nil
			if argc > 0 {
				for _, p := range unsafe.Slice((*uintptr)(argv), argc) {
					f.args = append(f.args, cStringToGo(p))
				}
			}
			if f.failNew {
				f.fail("no suitable module")
				return 0
			}
			f.instance = f.newHandle("instance")
			return f.instance
		},
		release: func(instance uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.dropHandle("instance", instance)
		},
		errmsg: func() uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.lastError == "" {
				return 0
			}
			return f.cstr(f.lastError)
		},
		getVersion: func() uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.cstr(f.version)
		},
		getChangeset: func() uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.cstr(f.changeset)
		},
		getCompiler: func() uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.cstr(f.compiler)
		},
		clock: func() int64 {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.clockMicros
		},
		free: func(ptr uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.freed = append(f.freed, ptr)
		},
		setUserAgent: func(instance uintptr, name, http string) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.userAgent = [2]string{name, http}
		},
		setAppID: func(instance uintptr, id, version, icon string) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.appID = [3]string{id, version, icon}
		},

		audioOutputListGet: func(instance uintptr) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			var head uintptr
			for i := len(f.outputs) - 1; i >= 0; i-- {
				node := &cAudioOutput{
					name:        f.cstr(f.outputs[i].Name),
					description: f.cstr(f.outputs[i].Description),
					next:        head,
				}
				f.keep = append(f.keep, node)
				head = uintptr(unsafe.Pointer(node))
			}
			if head != 0 {
				f.openLists++
			}
			return head
		},
		audioOutputListRelease: func(list uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.openLists--
		},
		audioOutputDeviceListGet: func(instance uintptr, aout string) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			devices := f.devices[aout]
			var head uintptr
			for i := len(devices) - 1; i >= 0; i-- {
				node := &cAudioOutputDevice{
					next:        head,
					device:      f.cstr(devices[i].ID),
					description: f.cstr(devices[i].Description),
				}
				f.keep = append(f.keep, node)
				head = uintptr(unsafe.Pointer(node))
			}
			if head != 0 {
				f.openLists++
			}
			return head
		},
		audioOutputDeviceListRelease: func(list uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.openLists--
		},

		equalizerGetPresetCount: func() uint32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.presetReads++
			return uint32(len(f.presets))
		},
		equalizerGetPresetName: func(index uint32) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			if int(index) >= len(f.presets) {
				return 0
			}
			return f.cstr(f.presets[index])
		},
		equalizerGetBandCount: func() uint32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			return uint32(len(f.bands))
		},
		equalizerGetBandFrequency: func(index uint32) float32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			if int(index) >= len(f.bands) {
				return -1
			}
			return f.bands[index]
		},

		mediaNewLocation: func(instance uintptr, mrl string) uintptr {
			f.hookCreate("media")
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.failMedia {
				f.fail("unsupported location")
				return 0
			}
			f.calls = append(f.calls, "media_new_location "+mrl)
			h := f.newHandle("media")
			f.mediaMRL[h] = mrl
			return h
		},
		mediaNewPath: func(instance uintptr, path string) uintptr {
			f.hookCreate("media")
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.failMedia {
				f.fail("no such file")
				return 0
			}
			f.calls = append(f.calls, "media_new_path "+path)
			h := f.newHandle("media")
			f.mediaMRL[h] = "file://" + path
			return h
		},
		mediaGetMRL: func(media uintptr) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.cstr(f.mediaMRL[media])
		},
		mediaRelease: func(media uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.dropHandle("media", media)
		},

		mediaPlayerNew: func(instance uintptr) uintptr {
			f.hookCreate("player")
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.failPlayer {
				f.fail("no video output")
				return 0
			}
			return f.newHandle("player")
		},
		mediaPlayerSetMedia: func(player, media uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.playerMedia[player] = media
		},
		mediaPlayerPlay: func(player uintptr) int32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.failPlay || f.playerMedia[player] == 0 {
				f.fail("nothing to play")
				return -1
			}
			f.playing[player] = true
			return 0
		},
		mediaPlayerStop: func(player uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.calls = append(f.calls, fmt.Sprintf("player_stop %#x", player))
			f.playing[player] = false
		},
		mediaPlayerIsPlaying: func(player uintptr) int32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.playing[player] {
				return 1
			}
			return 0
		},
		mediaPlayerRelease: func(player uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.dropHandle("player", player)
		},

		mediaDiscovererListGet: func(instance uintptr, category int32, services *uintptr) uint64 {
			f.mu.Lock()
			defer f.mu.Unlock()
			descrs := f.discoverers[DiscovererCategory(category)]
			if len(descrs) == 0 {
				*services = 0
				return 0
			}
			arr := make([]uintptr, len(descrs))
			for i, d := range descrs {
				node := &cMediaDiscovererDescription{
					name:     f.cstr(d.Name),
					longName: f.cstr(d.LongName),
					category: int32(d.Category),
				}
				f.keep = append(f.keep, node)
				arr[i] = uintptr(unsafe.Pointer(node))
			}
			f.keep = append(f.keep, arr)
			f.openLists++
			*services = uintptr(unsafe.Pointer(&arr[0]))
			return uint64(len(arr))
		},
		mediaDiscovererListRelease: func(services uintptr, count uint64) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.openLists--
		},
		mediaDiscovererNew: func(instance uintptr, name string) uintptr {
			f.hookCreate("discoverer")
			f.mu.Lock()
			defer f.mu.Unlock()
			for _, descrs := range f.discoverers {
				for _, d := range descrs {
					if d.Name == name {
						return f.newHandle("discoverer")
					}
				}
			}
			f.fail("unknown service")
			return 0
		},
		mediaDiscovererStart: func(discoverer uintptr) int32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.failDiscStart {
				f.fail("cannot start")
				return -1
			}
			f.running[discoverer] = true
			return 0
		},
		mediaDiscovererStop: func(discoverer uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.calls = append(f.calls, fmt.Sprintf("discoverer_stop %#x", discoverer))
			f.running[discoverer] = false
		},
		mediaDiscovererIsRunning: func(discoverer uintptr) int32 {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.running[discoverer] {
				return 1
			}
			return 0
		},
		mediaDiscovererRelease: func(discoverer uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.dropHandle("discoverer", discoverer)
		},

		rendererDiscovererListGet: func(instance uintptr, services *uintptr) uint64 {
			f.mu.Lock()
			defer f.mu.Unlock()
			if len(f.rendererDescrs) == 0 {
				*services = 0
				return 0
			}
			arr := make([]uintptr, len(f.rendererDescrs))
			for i, d := range f.rendererDescrs {
				node := &cRendererDescription{
					name:     f.cstr(d.Name),
					longName: f.cstr(d.LongName),
				}
				f.keep = append(f.keep, node)
				arr[i] = uintptr(unsafe.Pointer(node))
			}
			f.keep = append(f.keep, arr)
			f.openLists++
			*services = uintptr(unsafe.Pointer(&arr[0]))
			return uint64(len(arr))
		},
		rendererDiscovererListRelease: func(services uintptr, count uint64) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.openLists--
		},
	}
}

func testContext(t testing.TB) context.Context {
	t.Helper()
	return logger.CtxWithLogger(context.Background(), logger.Default())
}

// newTestFactory creates a factory backed by a fresh fake and releases it at
// the end of the test.
func newTestFactory(t testing.TB, opts ...Option) (*Factory, *fakeLibVLC) {
	t.Helper()
	fake := newFakeLibVLC()
	return newTestFactoryWithFake(t, fake, opts...), fake
}

func newTestFactoryWithFake(t testing.TB, fake *fakeLibVLC, opts ...Option) *Factory {
	t.Helper()
	ctx := testContext(t)
	f, err := NewFactory(ctx, append(opts, withSymbols(fake.symbols()))...)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Release(ctx))
	})
	return f
}
