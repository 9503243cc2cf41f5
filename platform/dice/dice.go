package dice

import (
	"math/rand"
	"sync"
	"time"
)

// Source produces two independent 1..6 values per roll and weighted picks
// for chance draws. Sessions only call it from their action loop.
type Source interface {
	Roll() (int, int)
	Intn(n int) int
}

// Seeded is a deterministic source for a given seed.
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a Seeded source. A zero seed uses the current time.
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

func (s *Seeded) Roll() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(6) + 1, s.rng.Intn(6) + 1
}

func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Scripted replays fixed rolls and picks, then falls back to Fallback
// (or 1+1 and 0) once exhausted.
type Scripted struct {
	Rolls    [][2]int
	Picks    []int
	Fallback Source

	rolled int
	picked int
}

func (s *Scripted) Roll() (int, int) {
	if s.rolled < len(s.Rolls) {
		r := s.Rolls[s.rolled]
		s.rolled++
		return r[0], r[1]
	}
	if s.Fallback != nil {
		return s.Fallback.Roll()
	}
	return 1, 1
}

func (s *Scripted) Intn(n int) int {
	if s.picked < len(s.Picks) {
		p := s.Picks[s.picked]
		s.picked++
		return p % n
	}
	if s.Fallback != nil {
		return s.Fallback.Intn(n)
	}
	return 0
}

// Rolled reports how many scripted rolls were consumed.
func (s *Scripted) Rolled() int {
	return s.rolled
}
