package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/trytobebee/snake_classic/pkg/game"
)

// Board defaults: a 1000x500 canvas split into 10x10 blocks
const (
	CanvasWidth  = 1000
	CanvasHeight = 500
	CellWidth    = 10
	CellHeight   = 10
	Rows         = CanvasHeight / CellHeight
	Cols         = CanvasWidth / CellWidth
)

// Timing and spawn settings
const (
	TickPeriod       = 500 * time.Millisecond
	PrizeProbability = 30 // percent per tick
)

// Default colors, any name tcell knows or #rrggbb
const (
	BoardColor = "white"
	SnakeColor = "blue"
	GridColor  = "black"
	PrizeColor = "red"
)

// Frontends
const (
	FrontendANSI   = "ansi"
	FrontendTcell  = "tcell"
	FrontendWindow = "window"
)

// StartPoint anchors the default body shape
var StartPoint = game.Cell{Row: 0, Col: 0}

var ErrInvalidConfig = errors.New("invalid config")

// DefaultBody returns the four cell seed snake, tail first
func DefaultBody() []game.Cell {
	offsets := []game.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}
	body := make([]game.Cell, len(offsets))
	for i, o := range offsets {
		body[i] = StartPoint.Add(o)
	}
	return body
}

// Palette holds the resolved drawing colors
type Palette struct {
	Board color.RGBA
	Snake color.RGBA
	Grid  color.RGBA
	Prize color.RGBA
}

// Config is loaded once at startup and never changes afterwards
type Config struct {
	Rows             int
	Cols             int
	CellWidth        int // pixels, window frontend
	CellHeight       int
	TickPeriod       time.Duration
	InitialBody      []game.Cell
	ShowGrid         bool
	PrizeProbability int
	Colors           Palette
	Frontend         string
	Seed             uint64 // 0 picks a time based seed
	RecordDir        string
	LogLevel         string
	LogFile          string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Rows:             Rows,
		Cols:             Cols,
		CellWidth:        CellWidth,
		CellHeight:       CellHeight,
		TickPeriod:       TickPeriod,
		InitialBody:      DefaultBody(),
		PrizeProbability: PrizeProbability,
		Colors: Palette{
			Board: mustColor(BoardColor),
			Snake: mustColor(SnakeColor),
			Grid:  mustColor(GridColor),
			Prize: mustColor(PrizeColor),
		},
		Frontend: FrontendANSI,
		LogLevel: "info",
	}
}

// Load reads .env (if present) and the process environment
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.LookupEnv)
}

// LoadFrom builds a config from defaults overridden by lookup
func LoadFrom(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	var errs []error

	intVar := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	colorVar := func(key string, dst *color.RGBA) {
		if v, ok := lookup(key); ok && v != "" {
			col, err := ParseColor(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = col
		}
	}
	strVar := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	intVar("SNAKE_ROWS", &c.Rows)
	intVar("SNAKE_COLS", &c.Cols)
	intVar("SNAKE_CELL_WIDTH", &c.CellWidth)
	intVar("SNAKE_CELL_HEIGHT", &c.CellHeight)
	intVar("SNAKE_PRIZE_PROBABILITY", &c.PrizeProbability)

	if v, ok := lookup("SNAKE_TICK_PERIOD"); ok && v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("SNAKE_TICK_PERIOD: %w", err))
		} else {
			c.TickPeriod = d
		}
	}
	if v, ok := lookup("SNAKE_INITIAL_BODY"); ok && v != "" {
		body, err := ParseBody(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SNAKE_INITIAL_BODY: %w", err))
		} else {
			c.InitialBody = body
		}
	}
	if v, ok := lookup("SNAKE_SHOW_GRID"); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("SNAKE_SHOW_GRID: %w", err))
		} else {
			c.ShowGrid = b
		}
	}
	if v, ok := lookup("SNAKE_SEED"); ok && v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("SNAKE_SEED: %w", err))
		} else {
			c.Seed = n
		}
	}

	colorVar("SNAKE_BOARD_COLOR", &c.Colors.Board)
	colorVar("SNAKE_SNAKE_COLOR", &c.Colors.Snake)
	colorVar("SNAKE_GRID_COLOR", &c.Colors.Grid)
	colorVar("SNAKE_PRIZE_COLOR", &c.Colors.Prize)

	strVar("SNAKE_FRONTEND", &c.Frontend)
	strVar("SNAKE_RECORD_DIR", &c.RecordDir)
	strVar("LOG_LEVEL", &c.LogLevel)
	strVar("LOG_FILE", &c.LogFile)
	c.Frontend = strings.ToLower(c.Frontend)

	if len(errs) > 0 {
		return c, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return c, c.Validate()
}

// Validate checks sizes, timing, probability, frontend and the seed body
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return fmt.Errorf("%w: cell %dx%d", ErrInvalidConfig, c.CellWidth, c.CellHeight)
	case c.TickPeriod <= 0:
		return fmt.Errorf("%w: tick period %v", ErrInvalidConfig, c.TickPeriod)
	case c.PrizeProbability < 0 || c.PrizeProbability > 100:
		return fmt.Errorf("%w: prize probability %d", ErrInvalidConfig, c.PrizeProbability)
	}

	switch c.Frontend {
	case FrontendANSI, FrontendTcell, FrontendWindow:
	default:
		return fmt.Errorf("%w: unknown frontend %q", ErrInvalidConfig, c.Frontend)
	}

	if _, err := game.NewState(c.GameOptions(nil)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Board returns the board dimensions
func (c Config) Board() game.Board {
	return game.Board{Rows: c.Rows, Cols: c.Cols}
}

// CanvasSize returns the window size in pixels
func (c Config) CanvasSize() (width, height int) {
	return c.Cols * c.CellWidth, c.Rows * c.CellHeight
}

// GameOptions converts the config into options for a new game heading right
func (c Config) GameOptions(r game.Rand) game.Options {
	body := make([]game.Cell, len(c.InitialBody))
	copy(body, c.InitialBody)
	return game.Options{
		Board:        c.Board(),
		Body:         body,
		Heading:      game.Right,
		SpawnPercent: c.PrizeProbability,
		Rand:         r,
	}
}

// ParseColor resolves a color name or #rrggbb through tcell's color table
func ParseColor(name string) (color.RGBA, error) {
	tc := tcell.GetColor(strings.ToLower(strings.TrimSpace(name)))
	r, g, b := tc.RGB()
	if r < 0 || g < 0 || b < 0 {
		return color.RGBA{}, fmt.Errorf("unknown color %q", name)
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, nil
}

func mustColor(name string) color.RGBA {
	c, err := ParseColor(name)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseBody reads "row:col,row:col,..." tail first
func ParseBody(s string) ([]game.Cell, error) {
	parts := strings.Split(s, ",")
	body := make([]game.Cell, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rc := strings.SplitN(part, ":", 2)
		if len(rc) != 2 {
			return nil, fmt.Errorf("cell %q: want row:col", part)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rc[0]))
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", part, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(rc[1]))
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", part, err)
		}
		body = append(body, game.Cell{Row: row, Col: col})
	}
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}
	return body, nil
}

// FormatBody is the inverse of ParseBody
func FormatBody(body []game.Cell) string {
	parts := make([]string, len(body))
	for i, c := range body {
		parts[i] = fmt.Sprintf("%d:%d", c.Row, c.Col)
	}
	return strings.Join(parts, ",")
}
