package vlc

import (
	"context"
	"fmt"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// MediaAPI creates media items and releases the ones still alive when it is
// released itself.
type MediaAPI struct {
	baseAPI
	items releaseHolder[*Media]
}

var _ API = (*MediaAPI)(nil)

func newMediaAPI(factory *Factory) *MediaAPI {
	a := &MediaAPI{}
	a.init(factory, "media")
	return a
}

// NewMedia creates a media item. An MRL containing "://" ("file:///...",
// "https://...", "rtsp://...") is opened as a location; anything else as a
// local path, including names with a colon such as "Artist: Song.mp3".
func (a *MediaAPI) NewMedia(ctx context.Context, mrl string) (*Media, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	lib := a.lib()

	isLocation := strings.Contains(mrl, "://")
	handle, errMsg := lib.createOrError(func() uintptr {
		if isLocation {
			logger.Debugf(ctx, "opening '%s' as a location", mrl)
			return lib.mediaNewLocation(uintptr(a.instance), mrl)
		}
		logger.Debugf(ctx, "opening '%s' as a path", mrl)
		return lib.mediaNewPath(uintptr(a.instance), mrl)
	})
	if handle == 0 {
		return nil, fmt.Errorf("%w from '%s': %s", ErrMediaCreate, mrl, errMsg)
	}

	m := &Media{
		nativeObject: nativeObject{kind: "media", handle: handle},
		api:          a,
	}
	if !a.items.add(m) {
		lib.mediaRelease(handle)
		return nil, fmt.Errorf("media API released while opening '%s': %w", mrl, ErrReleased)
	}
	return m, nil
}

// Live returns the number of media items created and not yet released.
func (a *MediaAPI) Live() int {
	return a.items.len()
}

// Release releases every media item still alive.
func (a *MediaAPI) Release(ctx context.Context) error {
	return a.release(ctx, a.items.releaseAll)
}

// Media is a libvlc_media_t.
type Media struct {
	nativeObject
	api *MediaAPI
}

// MRL returns the media resource locator libvlc resolved the item to.
func (m *Media) MRL() (string, error) {
	if err := m.checkLive(); err != nil {
		return "", err
	}
	lib := m.api.lib()
	return lib.takeString(lib.mediaGetMRL(m.handle)), nil
}

// Release frees the media item. Players holding it keep their own reference.
func (m *Media) Release(ctx context.Context) error {
	m.release(ctx, func() {
		m.api.lib().mediaRelease(m.handle)
		m.api.items.remove(m)
	})
	return nil
}
