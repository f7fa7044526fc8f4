package vlc

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// DiscovererCategory is a libvlc_media_discoverer_category_t.
type DiscovererCategory int32

const (
	DiscovererCategoryDevices   DiscovererCategory = iota // capture devices, e.g. v4l2
	DiscovererCategoryLAN                                 // network shares: UPnP, SMB, SAP
	DiscovererCategoryPodcasts                            // podcast directories
	DiscovererCategoryLocalDirs                           // local folders: Music, Videos
)

func (c DiscovererCategory) String() string {
	switch c {
	case DiscovererCategoryDevices:
		return "devices"
	case DiscovererCategoryLAN:
		return "lan"
	case DiscovererCategoryPodcasts:
		return "podcasts"
	case DiscovererCategoryLocalDirs:
		return "localdirs"
	default:
		return fmt.Sprintf("unknown(%d)", int32(c))
	}
}

// DiscovererDescription describes a media discoverer service.
type DiscovererDescription struct {
	Name     string
	LongName string
	Category DiscovererCategory
}

// MediaDiscovererAPI lists media discoverer services and runs discoverers.
type MediaDiscovererAPI struct {
	baseAPI
	discoverers releaseHolder[*MediaDiscoverer]
}

var _ API = (*MediaDiscovererAPI)(nil)

func newMediaDiscovererAPI(factory *Factory) *MediaDiscovererAPI {
	a := &MediaDiscovererAPI{}
	a.init(factory, "media discoverer")
	return a
}

// Discoverers returns the services of the given category.
func (a *MediaDiscovererAPI) Discoverers(
	ctx context.Context,
	category DiscovererCategory,
) ([]DiscovererDescription, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	lib := a.lib()
	var services uintptr
	count := lib.mediaDiscovererListGet(uintptr(a.instance), int32(category), &services)
	if count == 0 {
		logger.Debugf(ctx, "no media discoverers in category %s", category)
		return nil, nil
	}
	defer lib.mediaDiscovererListRelease(services, count)
	return readDiscovererDescriptions(services, count), nil
}

// NewDiscoverer creates and starts the discoverer service with the given
// name (see DiscovererDescription.Name).
func (a *MediaDiscovererAPI) NewDiscoverer(ctx context.Context, name string) (*MediaDiscoverer, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	lib := a.lib()
	handle, errMsg := lib.createOrError(func() uintptr {
		return lib.mediaDiscovererNew(uintptr(a.instance), name)
	})
	if handle == 0 {
		return nil, fmt.Errorf("%w '%s': %s", ErrDiscovererCreate, name, errMsg)
	}
	if ok, errMsg := lib.statusOrError(func() int32 {
		return lib.mediaDiscovererStart(handle)
	}); !ok {
		lib.mediaDiscovererRelease(handle)
		return nil, fmt.Errorf("unable to start media discoverer '%s': %s", name, errMsg)
	}
	logger.Debugf(ctx, "started media discoverer '%s'", name)

	d := &MediaDiscoverer{
		nativeObject: nativeObject{kind: "media discoverer", handle: handle},
		api:          a,
		name:         name,
	}
	if !a.discoverers.add(d) {
		lib.mediaDiscovererStop(handle)
		lib.mediaDiscovererRelease(handle)
		return nil, fmt.Errorf("media discoverer API released while starting '%s': %w", name, ErrReleased)
	}
	return d, nil
}

// Live returns the number of discoverers created and not yet released.
func (a *MediaDiscovererAPI) Live() int {
	return a.discoverers.len()
}

// Release stops and releases every discoverer still alive.
func (a *MediaDiscovererAPI) Release(ctx context.Context) error {
	return a.release(ctx, a.discoverers.releaseAll)
}

// MediaDiscoverer is a running libvlc_media_discoverer_t.
type MediaDiscoverer struct {
	nativeObject
	api  *MediaDiscovererAPI
	name string
}

// Name returns the service name the discoverer was created with.
func (d *MediaDiscoverer) Name() string {
	return d.name
}

// IsRunning reports whether the discoverer is running.
func (d *MediaDiscoverer) IsRunning() (bool, error) {
	if err := d.checkLive(); err != nil {
		return false, err
	}
	return d.api.lib().mediaDiscovererIsRunning(d.handle) != 0, nil
}

// Stop stops the discoverer. It can not be restarted.
func (d *MediaDiscoverer) Stop() error {
	if err := d.checkLive(); err != nil {
		return err
	}
	d.api.lib().mediaDiscovererStop(d.handle)
	return nil
}

// Release stops the discoverer if needed and frees it.
func (d *MediaDiscoverer) Release(ctx context.Context) error {
	d.release(ctx, func() {
		lib := d.api.lib()
		if lib.mediaDiscovererIsRunning(d.handle) != 0 {
			lib.mediaDiscovererStop(d.handle)
		}
		lib.mediaDiscovererRelease(d.handle)
		d.api.discoverers.remove(d)
	})
	return nil
}
