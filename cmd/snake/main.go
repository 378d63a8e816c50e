package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/trytobebee/snake_classic/pkg/config"
	"github.com/trytobebee/snake_classic/pkg/game"
	"github.com/trytobebee/snake_classic/pkg/input"
	"github.com/trytobebee/snake_classic/pkg/renderer"
	"github.com/trytobebee/snake_classic/pkg/renderer/window"
	"github.com/trytobebee/snake_classic/pkg/session"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("snake exited")
		fmt.Fprintln(os.Stderr, "snake:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	closeLog, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	state, err := game.NewState(cfg.GameOptions(rand.New(rand.NewSource(seed))))
	if err != nil {
		return err
	}

	id := uuid.NewString()
	logger := log.With().Str("frontend", cfg.Frontend).Logger()
	opts := []session.Option{session.WithID(id), session.WithLogger(logger)}

	if cfg.RecordDir != "" {
		rec, err := game.NewRecorder(cfg.RecordDir, id)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Warn().Err(err).Msg("close recorder")
			}
			if n := rec.Dropped(); n > 0 {
				log.Warn().Int("dropped", n).Msg("trace incomplete")
			}
		}()
		opts = append(opts, session.WithRecorder(rec))
		log.Info().Str("path", rec.Path()).Msg("recording steps")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Uint64("seed", seed).
		Int("rows", cfg.Rows).
		Int("cols", cfg.Cols).
		Str("frontend", cfg.Frontend).
		Msg("starting snake")

	switch cfg.Frontend {
	case config.FrontendTcell:
		err = runTcell(ctx, cfg, state, opts)
	case config.FrontendWindow:
		err = runWindow(ctx, cfg, state, opts)
	default:
		err = runANSI(ctx, cfg, state, opts)
	}
	if err != nil {
		return err
	}

	log.Info().Int("length", state.Len()).Stringer("status", state.Status()).Msg("game finished")
	fmt.Printf("\n  Final length: %d. Thanks for playing!\n", state.Len())
	return nil
}

// setupLogger routes the global logger. Terminal frontends own the screen so
// they log to LOG_FILE or nowhere.
func setupLogger(cfg config.Config) (func(), error) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return func() { f.Close() }, nil
	}

	var out io.Writer = io.Discard
	if cfg.Frontend == config.FrontendWindow {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return func() {}, nil
}

func runANSI(ctx context.Context, cfg config.Config, state *game.State, opts []session.Option) error {
	kb := input.NewKeyboardHandler()
	if err := kb.Start(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer kb.Stop()

	out := renderer.NewTerminalRenderer(os.Stdout, cfg.Board())
	if err := out.Open(); err != nil {
		return err
	}
	defer out.Close()

	return play(ctx, cfg, state, out, opts, kb.GetInputChan(), input.ParseDirection, input.IsQuit)
}

func runTcell(ctx context.Context, cfg config.Config, state *game.State, opts []session.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	out := renderer.NewTcellRenderer(screen, cfg.Board())
	return play(ctx, cfg, state, out, opts, input.PollTcell(screen), input.ParseTcellKey, input.IsTcellQuit)
}

// play runs a session next to a key pump. When the snake dies the board stays
// up until a quit key arrives or ctx is done.
func play[E any](ctx context.Context, cfg config.Config, state *game.State, out session.Renderer, opts []session.Option,
	events <-chan E, parse func(E) (game.Direction, bool), isQuit func(E) bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := session.New(cfg, state, out, opts...)
	keys := make(chan game.Direction)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		input.Pump(gctx, events, parse, isQuit, keys, cancel)
		return nil
	})
	g.Go(func() error {
		if err := s.Run(gctx, keys); err != nil {
			return err
		}
		// Keep the pump moving so it can still see the quit key
		for range keys {
		}
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runWindow(ctx context.Context, cfg config.Config, state *game.State, opts []session.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	canvas := renderer.NewCanvas(cfg.Board(), cfg.Colors.Board)
	keys := make(chan game.Direction, 1)
	s := session.New(cfg, state, canvas, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(gctx, keys) })

	width, height := cfg.CanvasSize()
	werr := window.Run(window.New(gctx, cfg, canvas, keys, cancel), width, height)
	cancel()

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(werr, err)
}
