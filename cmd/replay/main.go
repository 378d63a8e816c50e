package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trytobebee/snake_classic/pkg/config"
	"github.com/trytobebee/snake_classic/pkg/game"
	"github.com/trytobebee/snake_classic/pkg/renderer"
	"github.com/trytobebee/snake_classic/pkg/session"
)

var errNoStart = errors.New("trace has no start record")

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	dir := flag.String("dir", "records", "directory searched when no trace file is given")
	delay := flag.Duration("delay", 100*time.Millisecond, "pause between steps")
	grid := flag.Bool("grid", false, "show grid marks")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		latest, err := latestTrace(*dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", *dir).Msg("no trace to replay")
		}
		path = latest
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := replay(ctx, path, cfg.Colors, *grid, *delay); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Str("file", path).Msg("replay failed")
	}
}

// latestTrace picks the newest game_*.jsonl file in dir
func latestTrace(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	type traceFile struct {
		path string
		mod  time.Time
	}
	var files []traceFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" || !strings.HasPrefix(e.Name(), "game_") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, traceFile{path: filepath.Join(dir, e.Name()), mod: info.ModTime()})
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no traces in %s", dir)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].mod.After(files[j].mod)
	})
	return files[0].path, nil
}

func replay(ctx context.Context, path string, colors config.Palette, grid bool, delay time.Duration) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := game.ReadRecords(f)
	if err != nil {
		return err
	}
	if len(records) == 0 || records[0].Kind != game.KindStart || records[0].Board == nil {
		return errNoStart
	}

	start := records[0]
	out := renderer.NewTerminalRenderer(os.Stdout, *start.Board)
	if err := out.Open(); err != nil {
		return err
	}
	defer out.Close()

	session.PaintBoard(out, colors, grid, *start.Board, start.Prizes, start.Body)
	out.Notify(fmt.Sprintf("replaying session %s", start.Session))
	if err := out.Present(); err != nil {
		return err
	}

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	steps := 0
	for _, rec := range records[1:] {
		if rec.Delta == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		session.PaintDelta(out, colors, *rec.Delta)
		if err := out.Present(); err != nil {
			return err
		}
		steps++
	}

	log.Info().Int("steps", steps).Str("session", start.Session).Msg("replay finished")
	return nil
}
