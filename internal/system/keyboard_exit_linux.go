//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	evKey       = 0x01
	keyDown     = 1
	pollTimeout = 250 // ms
)

// StartExitOnKey calls onExit once, the first time key goes down on any
// /dev/input/event* device. Without readable devices it logs and returns.
func StartExitOnKey(ctx context.Context, logger Logger, key uint16, onExit func()) {
	if onExit == nil {
		return
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if logger != nil {
			logger.Infof("input", "no evdev devices, exit key %d disabled", key)
		}
		return
	}

	// struct input_event starts with a timeval whose size depends on the arch.
	tvSize := binary.Size(unix.Timeval{})
	if tvSize <= 0 {
		tvSize = 16
	}

	var once sync.Once
	fire := func() {
		once.Do(func() {
			if logger != nil {
				logger.Infof("input", "exit key %d pressed", key)
			}
			onExit()
		})
	}
	for _, path := range paths {
		go watchDevice(ctx, path, tvSize, key, fire)
	}
}

func watchDevice(ctx context.Context, path string, tvSize int, key uint16, fire func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	buf := make([]byte, 64*(tvSize+8))
	for ctx.Err() == nil {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, pollTimeout); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		switch {
		case err == unix.EAGAIN || err == unix.EINTR:
			continue
		case err != nil:
			return
		}
		if containsKeyPress(buf[:n], tvSize, key) {
			fire()
			return
		}
	}
}

// containsKeyPress scans a buffer of input_event records (timeval, u16 type,
// u16 code, s32 value) for a key-down of key. Trailing partial records are ignored.
func containsKeyPress(buf []byte, tvSize int, key uint16) bool {
	eventSize := tvSize + 2 + 2 + 4
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ == evKey && code == key && value == keyDown {
			return true
		}
	}
	return false
}
