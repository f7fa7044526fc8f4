//go:build !darwin && !linux

package vlc

import "fmt"

func openLibVLC(string) (*libvlcSymbols, error) {
	return nil, fmt.Errorf("%w: unsupported platform", ErrLibraryNotAvailable)
}
