package web

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Environment overrides for ServerConfig.
const (
	EnvListenAddr = "HALFTONE_LISTEN"
	EnvDevMode    = "HALFTONE_DEV"
)

// Server is the part of the HTTP shell the app controls.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

type NoopServer struct{}

func (*NoopServer) Start(context.Context) error { return nil }
func (*NoopServer) Stop() error                 { return nil }

// ServerConfig describes where the control page and API listen. The device
// binary defaults to :80, the simulator to :8080.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// DefaultServerConfigFromEnv starts from fallbackAddr and applies
// HALFTONE_LISTEN and HALFTONE_DEV when set.
func DefaultServerConfigFromEnv(fallbackAddr string) (ServerConfig, error) {
	cfg := ServerConfig{ListenAddr: fallbackAddr}
	if addr, ok := os.LookupEnv(EnvListenAddr); ok && addr != "" {
		cfg.ListenAddr = addr
	}

	raw, ok := os.LookupEnv(EnvDevMode)
	if !ok || raw == "" {
		return cfg, nil
	}
	dev, err := strconv.ParseBool(raw)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("%s=%q is not a boolean: %w", EnvDevMode, raw, err)
	}
	cfg.DevMode = dev
	return cfg, nil
}
