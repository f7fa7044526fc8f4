package vlc

import (
	"context"
	"time"
)

// Version describes the loaded libvlc build.
type Version struct {
	Version   string
	Changeset string
	Compiler  string
}

// ApplicationAPI exposes instance-wide information and settings.
type ApplicationAPI struct {
	baseAPI
}

var _ API = (*ApplicationAPI)(nil)

func newApplicationAPI(factory *Factory) *ApplicationAPI {
	a := &ApplicationAPI{}
	a.init(factory, "application")
	return a
}

// Version returns the libvlc version, changeset and compiler strings.
func (a *ApplicationAPI) Version() (Version, error) {
	if err := a.checkLive(); err != nil {
		return Version{}, err
	}
	lib := a.lib()
	return Version{
		Version:   cStringToGo(lib.getVersion()),
		Changeset: cStringToGo(lib.getChangeset()),
		Compiler:  cStringToGo(lib.getCompiler()),
	}, nil
}

// Clock returns the current value of the libvlc clock. The clock is
// monotonic and is the time base media timestamps are expressed in.
func (a *ApplicationAPI) Clock() (time.Duration, error) {
	if err := a.checkLive(); err != nil {
		return 0, err
	}
	return time.Duration(a.lib().clock()) * time.Microsecond, nil
}

// SetUserAgent sets the application name and HTTP user agent libvlc reports
// when talking to servers.
func (a *ApplicationAPI) SetUserAgent(name, http string) error {
	if err := a.checkLive(); err != nil {
		return err
	}
	a.lib().setUserAgent(uintptr(a.instance), name, http)
	return nil
}

// SetApplicationID sets the reverse-DNS application id, version and icon
// name used by e.g. audio servers.
func (a *ApplicationAPI) SetApplicationID(id, version, icon string) error {
	if err := a.checkLive(); err != nil {
		return err
	}
	a.lib().setAppID(uintptr(a.instance), id, version, icon)
	return nil
}

// Release marks the wrapper released. It owns no native resources.
func (a *ApplicationAPI) Release(ctx context.Context) error {
	return a.release(ctx, nil)
}
