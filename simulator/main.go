package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/halftone/internal/app"
	"github.com/rook-computer/halftone/internal/card"
	"github.com/rook-computer/halftone/internal/render"
	"github.com/rook-computer/halftone/internal/state"
	"github.com/rook-computer/halftone/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, the embedded control page is served")
	cardWidth := flag.Int("card-width", card.DefaultWidth, "card width in pixels")
	verbose := flag.Bool("v", false, "log requests and renders to stdout")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stdout)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	composer := &card.Composer{Width: *cardWidth, Logger: logger}

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger
	server.Handler = web.NewDefaultMux(*staticDir, web.APIV1Config{
		Deps: web.APIV1Deps{Store: store, Composer: composer, Logger: logger},
	})

	fmt.Println("Halftone simulator listening on", *listenAddr)
	fmt.Println("UI:  http://" + trimLeadingColon(*listenAddr) + "/")
	fmt.Println("API: http://" + trimLeadingColon(*listenAddr) + "/api/v1/")

	a := app.New(store, &render.NoopRenderer{}, server, nil)
	a.Logger = logger
	if err := a.Start(processCtx); err != nil && processCtx.Err() == nil {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}

func trimLeadingColon(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	return addr
}
