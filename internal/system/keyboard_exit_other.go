//go:build !linux

package system

import "context"

// StartExitOnKey is a no-op without evdev.
func StartExitOnKey(ctx context.Context, logger Logger, key uint16, onExit func()) {
	if logger != nil {
		logger.Infof("input", "keyboard exit unavailable on this platform")
	}
}
