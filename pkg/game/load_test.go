package game

import (
	"sync"
	"testing"

	"golang.org/x/exp/rand"
)

// steer returns a heading whose next cell is free, preferring the current one
func steer(s *State) (Direction, bool) {
	head := s.Head()
	for _, d := range []Direction{s.Direction(), Up, Right, Down, Left} {
		next := head.Add(d.Delta())
		if s.Board().Contains(next) && !s.Body().Contains(next) {
			return d, true
		}
	}
	return s.Direction(), false
}

// drive plays up to steps moves with the steering policy
func drive(s *State, steps int) (moves int) {
	for i := 0; i < steps && s.Alive(); i++ {
		d, _ := steer(s)
		if d != s.Direction() {
			s.MoveTo(d)
		} else {
			s.Tick()
		}
		moves++
	}
	return moves
}

func newBenchState(seed uint64) *State {
	body := []Cell{{0, 0}, {0, 1}, {1, 1}, {1, 2}}
	s, err := NewState(Options{
		Board:        Board{Rows: 50, Cols: 100},
		Body:         body,
		Heading:      Right,
		SpawnPercent: 30,
		Rand:         rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		panic(err)
	}
	return s
}

// TestConcurrentGamesLoad runs independent games side by side; states share nothing
func TestConcurrentGamesLoad(t *testing.T) {
	const games = 8
	states := make([]*State, games)
	moves := make([]int, games)

	var wg sync.WaitGroup
	wg.Add(games)
	for i := 0; i < games; i++ {
		states[i] = newBenchState(uint64(i + 1))
		go func(id int) {
			defer wg.Done()
			moves[id] = drive(states[id], 3000)
		}(i)
	}
	wg.Wait()

	for i, s := range states {
		if moves[i] == 0 {
			t.Errorf("game %d never moved", i)
		}
		assertInvariants(t, s)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	a, b := newBenchState(42), newBenchState(42)
	drive(a, 500)
	drive(b, 500)
	assertBodyEqual(t, a.Body(), b.Body())
	if len(a.Prizes()) != len(b.Prizes()) {
		t.Fatalf("prize counts differ: %d vs %d", len(a.Prizes()), len(b.Prizes()))
	}
	for i, p := range a.Prizes() {
		if b.Prizes()[i] != p {
			t.Errorf("prize %d differs: %v vs %v", i, p, b.Prizes()[i])
		}
	}
}

func BenchmarkTick(b *testing.B) {
	s := newBenchState(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !s.Alive() {
			b.StopTimer()
			s = newBenchState(uint64(i))
			b.StartTimer()
		}
		if d, _ := steer(s); d != s.Direction() {
			s.MoveTo(d)
			continue
		}
		s.Tick()
	}
}

func BenchmarkMoveToLongSnake(b *testing.B) {
	// A snake filling most of a row band makes collision scans expensive
	body := make([]Cell, 0, 400)
	for row := 0; row < 4; row++ {
		for col := 0; col < 100; col++ {
			c := col
			if row%2 == 1 {
				c = 99 - col
			}
			body = append(body, Cell{row, c})
		}
	}
	opts := Options{Board: Board{Rows: 50, Cols: 100}, Body: body, Heading: Down}

	s, _ := NewState(opts)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !s.Alive() || s.Head().Row == 49 {
			b.StopTimer()
			s, _ = NewState(opts)
			b.StartTimer()
		}
		s.MoveTo(Down)
	}
}
