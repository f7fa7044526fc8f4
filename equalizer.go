package vlc

import (
	"context"
	"sync"
)

// EqualizerPreset is a built-in equalizer preset.
type EqualizerPreset struct {
	Index uint32
	Name  string
}

// EqualizerBand is an equalizer frequency band; Frequency is in Hz.
type EqualizerBand struct {
	Index     uint32
	Frequency float32
}

// EqualizerAPI exposes the static equalizer presets and bands.
type EqualizerAPI struct {
	baseAPI

	cacheMu sync.Mutex
	presets []EqualizerPreset
	bands   []EqualizerBand
}

var _ API = (*EqualizerAPI)(nil)

func newEqualizerAPI(factory *Factory) *EqualizerAPI {
	a := &EqualizerAPI{}
	a.init(factory, "equalizer")
	return a
}

// Presets returns the equalizer presets. The list is read once and cached.
func (a *EqualizerAPI) Presets() ([]EqualizerPreset, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	a.cacheMu.Lock()
	defer a.cacheMu.Unlock()
	if a.presets == nil {
		lib := a.lib()
		count := lib.equalizerGetPresetCount()
		presets := make([]EqualizerPreset, 0, count)
		for i := uint32(0); i < count; i++ {
			presets = append(presets, EqualizerPreset{
				Index: i,
				Name:  cStringToGo(lib.equalizerGetPresetName(i)),
			})
		}
		a.presets = presets
	}
	return append([]EqualizerPreset(nil), a.presets...), nil
}

// Bands returns the equalizer bands. The list is read once and cached.
func (a *EqualizerAPI) Bands() ([]EqualizerBand, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	a.cacheMu.Lock()
	defer a.cacheMu.Unlock()
	if a.bands == nil {
		lib := a.lib()
		count := lib.equalizerGetBandCount()
		bands := make([]EqualizerBand, 0, count)
		for i := uint32(0); i < count; i++ {
			bands = append(bands, EqualizerBand{
				Index:     i,
				Frequency: lib.equalizerGetBandFrequency(i),
			})
		}
		a.bands = bands
	}
	return append([]EqualizerBand(nil), a.bands...), nil
}

// Release drops the cached presets and bands.
func (a *EqualizerAPI) Release(ctx context.Context) error {
	return a.release(ctx, func(context.Context) error {
		a.cacheMu.Lock()
		defer a.cacheMu.Unlock()
		a.presets = nil
		a.bands = nil
		return nil
	})
}
