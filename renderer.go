package vlc

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// RendererDescription describes a renderer discoverer service, e.g.
// "microdns" for Chromecast discovery.
type RendererDescription struct {
	Name     string
	LongName string
}

// RendererAPI lists renderer discoverer services.
type RendererAPI struct {
	baseAPI
}

var _ API = (*RendererAPI)(nil)

func newRendererAPI(factory *Factory) *RendererAPI {
	a := &RendererAPI{}
	a.init(factory, "renderer")
	return a
}

// Discoverers returns the renderer discoverer services libvlc provides.
func (a *RendererAPI) Discoverers(ctx context.Context) ([]RendererDescription, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	lib := a.lib()
	var services uintptr
	count := lib.rendererDiscovererListGet(uintptr(a.instance), &services)
	if count == 0 {
		logger.Debugf(ctx, "no renderer discoverers")
		return nil, nil
	}
	defer lib.rendererDiscovererListRelease(services, count)
	return readRendererDescriptions(services, count), nil
}

// Release marks the wrapper released. The service list is freed as soon as
// it is read.
func (a *RendererAPI) Release(ctx context.Context) error {
	return a.release(ctx, nil)
}
