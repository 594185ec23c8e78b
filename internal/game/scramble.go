package game

import (
	"fmt"

	"github.com/robalobadob/unscramble/internal/words"
)

// maxShuffles bounds the rejection sampling in Scramble.
const maxShuffles = 10

// Scramble returns a random permutation of word's characters that differs
// from word. It reshuffles up to maxShuffles times; if every shuffle lands
// on the original, the first character is swapped with the first character
// that differs from it.
func Scramble(word string, rng Rand) (string, error) {
	if !words.Scramblable(word) {
		return "", fmt.Errorf("%w: %q", ErrUnscramblable, word)
	}
	rs := []rune(word)
	swap := func(i, j int) { rs[i], rs[j] = rs[j], rs[i] }
	for i := 0; i < maxShuffles; i++ {
		rng.Shuffle(len(rs), swap)
		if s := string(rs); s != word {
			return s, nil
		}
	}
	// rs equals word here.
	for j := 1; j < len(rs); j++ {
		if rs[j] != rs[0] {
			swap(0, j)
			break
		}
	}
	return string(rs), nil
}
