package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/halftone/internal/app"
	"github.com/rook-computer/halftone/internal/app/screens"
	"github.com/rook-computer/halftone/internal/card"
	"github.com/rook-computer/halftone/internal/render"
	"github.com/rook-computer/halftone/internal/state"
	"github.com/rook-computer/halftone/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./halftone-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via HALFTONE_STDIO_LOG")
	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode (permissive CORS); also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve the control page from this directory instead of the embedded one")
	fbDevice := flag.String("fb", "/dev/fb0", "framebuffer device")
	cardWidth := flag.Int("card-width", card.DefaultWidth, "card width in pixels")
	export := flag.String("export", "", "render both cards to this PNG file and exit")
	scale := flag.Int("scale", 1, "pixel density of -export (1-4)")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("HALFTONE_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./halftone-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	store := state.NewStore()
	composer := &card.Composer{Width: *cardWidth}
	if *debug {
		composer.Logger = logger
	}

	if *export != "" {
		if err := exportDeck(*export, composer, store.Snapshot(), *scale); err != nil {
			fmt.Println("export error:", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *export)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer := render.NewFBRenderer()
	renderer.Device = *fbDevice

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	server.Logger = logger
	server.Handler = web.NewDefaultMux(*staticDir, web.APIV1Config{
		Deps: web.APIV1Deps{Store: store, Composer: composer, Logger: logger},
	})

	deck := screens.NewDeckScreen(composer, logger)
	deck.SetHint("edit the cards at http://<this device>" + *listenAddr + "/  ·  F4 to exit")

	a := app.New(store, renderer, server, deck)
	a.Logger = logger
	a.Debug = *debug
	a.ExitOnF4 = true

	if err := a.Start(ctx); err != nil && ctx.Err() == nil {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}

func exportDeck(path string, composer *card.Composer, settings state.Settings, scale int) error {
	res, err := composer.ComposeDeck(settings)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, card.Scale(res.Image, scale)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
