package vlc

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// AudioOutput is an audio output module, e.g. "pulse" or "alsa".
type AudioOutput struct {
	Name        string
	Description string
}

// AudioDevice is a device of an audio output module.
type AudioDevice struct {
	ID          string
	Description string
}

// AudioAPI enumerates audio outputs and devices.
type AudioAPI struct {
	baseAPI
}

var _ API = (*AudioAPI)(nil)

func newAudioAPI(factory *Factory) *AudioAPI {
	a := &AudioAPI{}
	a.init(factory, "audio")
	return a
}

// Outputs returns the available audio output modules.
func (a *AudioAPI) Outputs(ctx context.Context) ([]AudioOutput, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	lib := a.lib()
	list := lib.audioOutputListGet(uintptr(a.instance))
	if list == 0 {
		logger.Debugf(ctx, "no audio outputs")
		return nil, nil
	}
	defer lib.audioOutputListRelease(list)
	return readAudioOutputs(list), nil
}

// Devices returns the devices of the given audio output module.
func (a *AudioAPI) Devices(ctx context.Context, output string) ([]AudioDevice, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	lib := a.lib()
	list := lib.audioOutputDeviceListGet(uintptr(a.instance), output)
	if list == 0 {
		logger.Debugf(ctx, "no devices for audio output '%s'", output)
		return nil, nil
	}
	defer lib.audioOutputDeviceListRelease(list)
	return readAudioDevices(list), nil
}

// Release marks the wrapper released. Lists are freed as soon as they are
// read, so there is nothing else to free.
func (a *AudioAPI) Release(ctx context.Context) error {
	return a.release(ctx, nil)
}
