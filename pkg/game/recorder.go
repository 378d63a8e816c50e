package game

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Step record kinds
const (
	KindStart = "start"
	KindTick  = "tick"
	KindKey   = "key"
)

// StepRecord is one line of a game trace
type StepRecord struct {
	Seq     int       `json:"seq"`
	Time    time.Time `json:"time"`
	Kind    string    `json:"kind"`
	Session string    `json:"session,omitempty"`
	Board   *Board    `json:"board,omitempty"`
	Body    []Cell    `json:"body,omitempty"`
	Prizes  []Prize   `json:"prizes,omitempty"`
	Delta   *Delta    `json:"delta,omitempty"`
}

// StartRecord captures the initial state so a trace can be replayed
func StartRecord(s *State, session string) StepRecord {
	board := s.Board()
	return StepRecord{
		Time:    time.Now(),
		Kind:    KindStart,
		Session: session,
		Board:   &board,
		Body:    s.Body(),
		Prizes:  s.Prizes(),
	}
}

// GameRecorder handles asynchronous logging of game steps
type GameRecorder struct {
	closer     io.Closer
	writer     *bufio.Writer
	recordChan chan StepRecord
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	seq        int
	dropped    int
	path       string
}

// NewRecorder creates a recorder writing to dir.
// Filename format: game_{sessionID}_{timestamp}.jsonl
func NewRecorder(dir, sessionID string) (*GameRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create records dir: %w", err)
	}

	filename := fmt.Sprintf("game_%s_%d.jsonl", sessionID, time.Now().Unix())
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create record file: %w", err)
	}

	r := NewRecorderTo(f)
	r.path = path
	return r, nil
}

// NewRecorderTo records to w; w is closed by Close when it is an io.Closer
func NewRecorderTo(w io.Writer) *GameRecorder {
	r := &GameRecorder{
		writer:     bufio.NewWriter(w),
		recordChan: make(chan StepRecord, 1000), // Buffer up to 1000 steps
	}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}

	r.wg.Add(1)
	go r.writeLoop()

	return r
}

// Path returns the trace file, empty for writer-backed recorders
func (r *GameRecorder) Path() string {
	return r.path
}

// Record queues a record to be written. Non-blocking (drops if full).
// The Delta is copied, so the caller may reuse its variable after the call.
func (r *GameRecorder) Record(rec StepRecord) {
	if rec.Delta != nil {
		d := *rec.Delta
		rec.Delta = &d
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.seq++
	rec.Seq = r.seq
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	select {
	case r.recordChan <- rec:
	default:
		// Channel full, drop to protect the game loop
		r.dropped++
	}
}

// Dropped returns how many records were discarded because the queue was full
func (r *GameRecorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes the buffer and closes the underlying writer
func (r *GameRecorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.recordChan)
	r.mu.Unlock()

	r.wg.Wait()
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func (r *GameRecorder) writeLoop() {
	defer r.wg.Done()

	encoder := json.NewEncoder(r.writer)
	for rec := range r.recordChan {
		if err := encoder.Encode(rec); err != nil {
			log.Warn().Err(err).Int("seq", rec.Seq).Msg("record step")
			continue
		}
	}
	if err := r.writer.Flush(); err != nil {
		log.Warn().Err(err).Msg("flush trace")
	}
}

// ReadRecords decodes a JSONL trace
func ReadRecords(rd io.Reader) ([]StepRecord, error) {
	var records []StepRecord
	dec := json.NewDecoder(rd)
	for {
		var rec StepRecord
		err := dec.Decode(&rec)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("decode record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
}
