package vlc

import (
	"context"
	"errors"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// MediaPlayerAPI creates media players and releases the ones still alive
// when it is released itself.
type MediaPlayerAPI struct {
	baseAPI
	players releaseHolder[*MediaPlayer]
}

var _ API = (*MediaPlayerAPI)(nil)

func newMediaPlayerAPI(factory *Factory) *MediaPlayerAPI {
	a := &MediaPlayerAPI{}
	a.init(factory, "media player")
	return a
}

// NewMediaPlayer creates an empty media player.
func (a *MediaPlayerAPI) NewMediaPlayer(ctx context.Context) (*MediaPlayer, error) {
	if err := a.checkLive(); err != nil {
		return nil, err
	}
	lib := a.lib()
	handle, errMsg := lib.createOrError(func() uintptr {
		return lib.mediaPlayerNew(uintptr(a.instance))
	})
	if handle == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlayerCreate, errMsg)
	}
	logger.Debugf(ctx, "created media player %#x", handle)

	p := &MediaPlayer{
		nativeObject: nativeObject{kind: "media player", handle: handle},
		api:          a,
	}
	if !a.players.add(p) {
		lib.mediaPlayerRelease(handle)
		return nil, fmt.Errorf("media player API released while creating a player: %w", ErrReleased)
	}
	return p, nil
}

// Live returns the number of players created and not yet released.
func (a *MediaPlayerAPI) Live() int {
	return a.players.len()
}

// Release stops and releases every player still alive.
func (a *MediaPlayerAPI) Release(ctx context.Context) error {
	return a.release(ctx, a.players.releaseAll)
}

// MediaPlayer is a libvlc_media_player_t.
type MediaPlayer struct {
	nativeObject
	api *MediaPlayerAPI
}

// SetMedia sets the media to play. The player takes its own reference, so m
// may be released afterwards.
func (p *MediaPlayer) SetMedia(m *Media) error {
	if err := p.checkLive(); err != nil {
		return err
	}
	if m == nil {
		return errors.New("media is nil")
	}
	if err := m.checkLive(); err != nil {
		return err
	}
	p.api.lib().mediaPlayerSetMedia(p.handle, m.handle)
	return nil
}

// Play starts playback.
func (p *MediaPlayer) Play() error {
	if err := p.checkLive(); err != nil {
		return err
	}
	lib := p.api.lib()
	if ok, errMsg := lib.statusOrError(func() int32 {
		return lib.mediaPlayerPlay(p.handle)
	}); !ok {
		return fmt.Errorf("unable to start playback: %s", errMsg)
	}
	return nil
}

// Stop stops playback.
func (p *MediaPlayer) Stop() error {
	if err := p.checkLive(); err != nil {
		return err
	}
	p.api.lib().mediaPlayerStop(p.handle)
	return nil
}

// IsPlaying reports whether the player is playing.
func (p *MediaPlayer) IsPlaying() (bool, error) {
	if err := p.checkLive(); err != nil {
		return false, err
	}
	return p.api.lib().mediaPlayerIsPlaying(p.handle) != 0, nil
}

// Release stops the player and frees it.
func (p *MediaPlayer) Release(ctx context.Context) error {
	p.release(ctx, func() {
		lib := p.api.lib()
		lib.mediaPlayerStop(p.handle)
		lib.mediaPlayerRelease(p.handle)
		p.api.players.remove(p)
	})
	return nil
}
