package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/termtris/animation"
	"github.com/lixenwraith/termtris/audio"
	"github.com/lixenwraith/termtris/config"
	"github.com/lixenwraith/termtris/core"
	"github.com/lixenwraith/termtris/engine"
	"github.com/lixenwraith/termtris/history"
	"github.com/lixenwraith/termtris/input"
	"github.com/lixenwraith/termtris/render"
	"github.com/lixenwraith/termtris/server"
	"github.com/lixenwraith/termtris/service"
	"github.com/lixenwraith/termtris/status"
	"github.com/lixenwraith/termtris/tetris"
)

const (
	logDir      = "logs"
	logFileName = "termtris.log"
	maxLogSize  = 10 * 1024 * 1024

	// Interval of the metrics summary logged in serve mode
	metricsInterval = time.Minute
)

func main() {
	fs := flag.NewFlagSet("termtris", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Resolve(flags.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termtris: %v\n", err)
		os.Exit(2)
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "termtris: %v\n", err)
		os.Exit(2)
	}

	logFile := setupLogging(cfg.Debug)

	if cfg.Server.Enabled {
		err = serve(cfg)
	} else {
		err = play(cfg)
	}

	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "termtris: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to logs/termtris.log in debug mode
// The terminal belongs to the game, so logs never go to stdout or stderr
// An oversized log is renamed with a timestamp before a fresh one is opened
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("termtris_%s.log", time.Now().Format("20060102_150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("termtris: logging started")
	return f
}

// play runs one local game on the controlling terminal until the player quits
func play(cfg *config.Config) error {
	hub := service.NewHub()
	hist := history.NewService()
	snd := audio.NewService()
	for _, svc := range []service.Service{hist, snd} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}
	if err := hub.InitAll(cfg); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	keys, err := input.ResolveKeyTable(cfg.Input.KeymapPath)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.SetCrashTerminal(screen)
	defer func() {
		core.SetCrashTerminal(nil)
		screen.Fini()
	}()
	defer core.Recover()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := tetris.OptionsFrom(cfg)
	loop := engine.NewLoop(nil, 0)
	view := render.NewScreen(screen, opts.Width, opts.Height, opts.PreviewSize)
	prompt := tetris.NewPrompt(view.RenderMessage)

	ctrl := tetris.New(opts, tetris.Deps{
		Scheduler: loop,
		Renderer:  view,
		Cues:      snd.Player(),
		History:   hist.Store(),
		Confirmer: prompt,
		Idle:      animation.NewScreenSaver(loop, opts.Width, opts.Height),
		GameOver:  animation.NewGameOver(loop),
	})
	handler := tetris.NewKeys(ctrl, loop, keys, cfg.Timing.KeyReleaseDelay(), prompt, cancel)

	loop.Post(ctrl.Start)
	core.Go(func() { pollEvents(screen, loop, handler.Key, view.Redraw) })

	err = loop.Run(ctx)
	ctrl.Stop()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pollEvents forwards terminal events to the loop; it ends when the screen is finalized
func pollEvents(screen tcell.Screen, loop *engine.Loop, key func(input.Key), redraw func()) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			k := input.KeyOf(ev)
			if !loop.Post(func() { key(k) }) {
				return
			}
		case *tcell.EventResize:
			if !loop.Post(redraw) {
				return
			}
		}
	}
}

// serve runs the SSH server until a signal arrives or serving fails
func serve(cfg *config.Config) error {
	metrics := status.NewRegistry()
	hub := service.NewHub()
	hist := history.NewService()
	srv := server.New(hist, metrics)
	for _, svc := range []service.Service{hist, srv} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}
	if err := hub.InitAll(cfg); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(os.Stdout, "termtris: serving on %s\n", srv.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Wait(gctx) })
	g.Go(func() error {
		reportMetrics(gctx, metrics, metricsInterval)
		return nil
	})
	return g.Wait()
}

// reportMetrics logs the counter snapshot periodically until ctx ends
func reportMetrics(ctx context.Context, metrics *status.Registry, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Printf("metrics: %v", metrics.IntSnapshot())
		}
	}
}
