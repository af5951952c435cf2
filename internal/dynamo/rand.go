package dynamo

import (
	"time"

	"golang.org/x/exp/rand"
)

// RandSource is the randomness an ensemble consumes: uniform floats in
// [0, 1) for scatter and angles, uniform indices in [0, n) for direction picks.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded pseudo-random source.
func NewRand(seed int64) RandSource {
	return rand.New(rand.NewSource(uint64(seed)))
}

// NewTimeRand returns a source seeded from the wall clock.
func NewTimeRand() RandSource {
	return NewRand(time.Now().UnixNano())
}

// Sequence replays fixed values in a loop. An empty Floats yields 0 and an
// empty Ints yields 0, which makes it usable as a "no randomness" source.
type Sequence struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func (s *Sequence) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

func (s *Sequence) Intn(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)] % n
	s.ii++
	if v < 0 {
		v += n
	}
	return v
}

// Reset rewinds the sequence to its first values.
func (s *Sequence) Reset() {
	s.fi, s.ii = 0, 0
}
