// Package session runs one game: it owns the State, the tick timer and the
// renderer, and is the single consumer of timer ticks and key directions.
package session

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/trytobebee/snake_classic/pkg/config"
	"github.com/trytobebee/snake_classic/pkg/game"
)

// Notices shown to the player
const (
	MsgDead           = "YOU ARE DEAD!"
	MsgAlreadyStarted = "Already started!"
)

var ErrAlreadyStarted = errors.New("session already started")

// Renderer draws cells; implementations live in pkg/renderer. A session only
// calls it from one goroutine at a time, so implementations need no locking.
type Renderer interface {
	FillCell(c game.Cell, col color.RGBA)
	ClearCell(c game.Cell, board color.RGBA)
	DrawGrid(grid color.RGBA)
	Notify(msg string)
	Present() error
}

// Recorder receives every applied step
type Recorder interface {
	Record(rec game.StepRecord)
}

// Ticker is the timer handle; time.Ticker is adapted by realTicker
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker wraps time.NewTicker
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Option customises a session
type Option func(*Session)

// WithLogger sets the logger; the session adds its id field
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithRecorder records every step
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.rec = r }
}

// WithTicker replaces the timer factory
func WithTicker(f func(time.Duration) Ticker) Option {
	return func(s *Session) { s.newTicker = f }
}

// WithID fixes the session id
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session is single use: once it has run, a fresh State and Session are needed
type Session struct {
	id        string
	cfg       config.Config
	state     *game.State
	render    Renderer
	rec       Recorder
	log       zerolog.Logger
	newTicker func(time.Duration) Ticker

	started  atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	notices  chan notice
	done     chan struct{} // closed when the first Run returns
	lateMu   sync.Mutex    // serialises notices painted after done
}

// notice asks the running loop to show msg; the loop replies with the Present error
type notice struct {
	msg   string
	reply chan error
}

// New prepares a session around state; nothing runs until Run
func New(cfg config.Config, state *game.State, render Renderer, opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		cfg:       cfg,
		state:     state,
		render:    render,
		log:       zerolog.Nop(),
		newTicker: NewTicker,
		stop:      make(chan struct{}),
		notices:   make(chan notice),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("session", s.id).Logger()
	return s
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// State returns the game being driven. Read it only after Run has returned.
func (s *Session) State() *game.State {
	return s.state
}

// Stop ends Run; safe to call more than once and from any goroutine
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Run paints the initial board, starts the timer and consumes ticks and key
// directions until the snake dies, ctx is done or Stop is called.
// Key directions move the snake at once, independent of the timer.
// A second call is rejected with ErrAlreadyStarted; its notice is painted by
// the running loop so the renderer is only ever used from one goroutine.
func (s *Session) Run(ctx context.Context, keys <-chan game.Direction) error {
	if !s.started.CompareAndSwap(false, true) {
		s.log.Warn().Msg("start rejected, session already started")
		return errors.Join(ErrAlreadyStarted, s.notify(MsgAlreadyStarted))
	}
	defer close(s.done)

	PaintBoard(s.render, s.cfg.Colors, s.cfg.ShowGrid, s.state.Board(), s.state.Prizes(), s.state.Body())
	if err := s.render.Present(); err != nil {
		return err
	}
	if s.rec != nil {
		s.rec.Record(game.StartRecord(s.state, s.id))
	}

	ticker := s.newTicker(s.cfg.TickPeriod)
	var release sync.Once
	stopTicker := func() { release.Do(ticker.Stop) }
	defer stopTicker()

	s.log.Info().
		Int("rows", s.cfg.Rows).
		Int("cols", s.cfg.Cols).
		Dur("period", s.cfg.TickPeriod).
		Int("length", s.state.Len()).
		Msg("session started")

	for {
		var (
			d    game.Delta
			kind string
		)
		select {
		case <-ctx.Done():
			s.log.Info().Err(ctx.Err()).Msg("session cancelled")
			return ctx.Err()
		case <-s.stop:
			s.log.Info().Msg("session stopped")
			return nil
		case n := <-s.notices:
			s.render.Notify(n.msg)
			err := s.render.Present()
			n.reply <- err
			if err != nil {
				return err
			}
			continue
		case <-ticker.C():
			d, kind = s.state.Tick(), game.KindTick
		case dir, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			d, kind = s.state.MoveTo(dir), game.KindKey
		}

		if err := s.apply(d, kind); err != nil {
			return err
		}
		if d.Terminal() {
			stopTicker()
			s.log.Info().
				Stringer("crash", *d.Crash).
				Int("length", s.state.Len()).
				Msg("snake died")
			return nil
		}
	}
}

// notify shows msg through the running loop, or directly once Run has returned
func (s *Session) notify(msg string) error {
	n := notice{msg: msg, reply: make(chan error, 1)}
	select {
	case s.notices <- n:
		return <-n.reply
	case <-s.done:
	}

	s.lateMu.Lock()
	defer s.lateMu.Unlock()
	s.render.Notify(msg)
	return s.render.Present()
}

// PaintBoard clears every cell of board, then draws prizes and the body
func PaintBoard(r Renderer, colors config.Palette, showGrid bool, board game.Board, prizes []game.Prize, body []game.Cell) {
	if showGrid {
		r.DrawGrid(colors.Grid)
	}
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			r.ClearCell(game.Cell{Row: row, Col: col}, colors.Board)
		}
	}
	for _, p := range prizes {
		r.FillCell(p.Cell, colors.Prize)
	}
	for _, c := range body {
		r.FillCell(c, colors.Snake)
	}
}

// PaintDelta draws the cells a step changed. Ignored steps draw nothing.
func PaintDelta(r Renderer, colors config.Palette, d game.Delta) {
	if d.Outcome == game.Ignored {
		return
	}
	for _, c := range d.Cleared {
		r.ClearCell(c, colors.Board)
	}
	for _, p := range d.Spawned {
		r.FillCell(p.Cell, colors.Prize)
	}
	for _, c := range d.Drawn {
		r.FillCell(c, colors.Snake)
	}
	if d.Terminal() {
		r.Notify(MsgDead)
	}
}

// apply paints a delta, records it and presents the frame
func (s *Session) apply(d game.Delta, kind string) error {
	if d.Outcome == game.Ignored {
		return nil
	}

	PaintDelta(s.render, s.cfg.Colors, d)

	ev := s.log.Debug().
		Str("kind", kind).
		Stringer("dir", d.Direction).
		Stringer("outcome", d.Outcome).
		Stringer("head", d.Head).
		Int("length", s.state.Len())
	if d.Eaten != nil {
		ev = ev.Uint64("eaten", d.Eaten.ID)
	}
	ev.Msg("step")

	if s.rec != nil {
		s.rec.Record(game.StepRecord{Kind: kind, Session: s.id, Delta: &d})
	}
	return s.render.Present()
}
