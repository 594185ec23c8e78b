// internal/words/words.go
//
// Word source management for the round engine.
//
// Responsibilities:
//   - Build an immutable Source from a raw word list (trim, drop blanks,
//     de-duplicate, reject words that cannot be scrambled).
//   - Load the list from a file (WORDS_FILE) or fall back to the embedded
//     default in the assets package.
//
// Constraints:
//   • A word must have at least two distinct characters, otherwise no
//     permutation of it differs from the word itself.
//   • Letter case is preserved; guesses are compared case-insensitively
//     by the game package.
//   • A Source is never mutated after construction and may be shared by
//     any number of rounds.

package words

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/unscramble/assets"
)

// ErrEmptySource is returned when no usable word remains after validation.
var ErrEmptySource = errors.New("words: source is empty")

// Source is a fixed, read-only pool of candidate words.
type Source struct {
	words []string
}

// New validates list and returns a Source holding the usable words in
// their original order. Unusable entries are skipped with a warning.
func New(list []string) (*Source, error) {
	cleaned := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if !utf8.ValidString(w) {
			log.Warn().Str("word", w).Msg("skipping word that is not valid UTF-8")
			continue
		}
		if !Scramblable(w) {
			log.Warn().Str("word", w).Msg("skipping word with no distinct scramble")
			continue
		}
		cleaned = append(cleaned, w)
	}
	cleaned = lo.Uniq(cleaned)
	if len(cleaned) == 0 {
		return nil, ErrEmptySource
	}
	return &Source{words: cleaned}, nil
}

// Load builds a Source from path, or from the embedded list if path is empty.
func Load(path string) (*Source, error) {
	if path == "" {
		list, err := assets.WordList()
		if err != nil {
			return nil, fmt.Errorf("read embedded words: %w", err)
		}
		return New(list)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	list, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return New(list)
}

// Len reports how many words the source holds.
func (s *Source) Len() int { return len(s.words) }

// Words returns a copy of the word list.
func (s *Source) Words() []string {
	return append([]string(nil), s.words...)
}

// Contains reports whether w is in the source, ignoring letter case.
func (s *Source) Contains(w string) bool {
	return lo.ContainsBy(s.words, func(x string) bool { return strings.EqualFold(x, w) })
}

// Scramblable reports whether some permutation of w differs from w,
// i.e. w is valid UTF-8 and holds at least two distinct characters.
func Scramblable(w string) bool {
	if !utf8.ValidString(w) {
		return false
	}
	var first rune
	for i, r := range w {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			return true
		}
	}
	return false
}
