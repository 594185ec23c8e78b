package game

import "lukechampine.com/frand"

// Rand is the randomness a round needs. *math/rand.Rand satisfies it,
// which tests use for reproducible rounds.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// frandSource draws from the process-wide frand generator.
type frandSource struct{}

func (frandSource) Intn(n int) int                     { return frand.Intn(n) }
func (frandSource) Shuffle(n int, swap func(i, j int)) { frand.Shuffle(n, swap) }
