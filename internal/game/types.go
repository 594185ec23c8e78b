// internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - Field: one of the published round values (scrambled word, score, count).
//   - State: read-only snapshot of what a view renders.
//   - Change/Observer: the observation contract.
//   - Sentinel errors.

package game

import "errors"

const (
	// ScoreIncrease is added to the score for every correct guess.
	ScoreIncrease = 20
	// DefaultMaxWords is the number of words presented in a round.
	DefaultMaxWords = 10
)

var (
	// ErrExhaustedWordSource means every word in the source was already used this round.
	ErrExhaustedWordSource = errors.New("game: word source exhausted")
	// ErrInvalidRound is returned by Start for a nil source or maxWords < 1.
	ErrInvalidRound = errors.New("game: invalid round parameters")
	// ErrNotStarted is returned when an operation needs a started round.
	ErrNotStarted = errors.New("game: round not started")
	// ErrUnscramblable is returned for words with no permutation distinct from themselves.
	ErrUnscramblable = errors.New("game: word cannot be scrambled")
)

// Field identifies a published round value.
type Field int

const (
	FieldScrambledWord Field = iota
	FieldScore
	FieldWordCount
)

func (f Field) String() string {
	switch f {
	case FieldScrambledWord:
		return "scrambledWord"
	case FieldScore:
		return "score"
	case FieldWordCount:
		return "wordCount"
	}
	return "unknown"
}

// State is a snapshot of the values a view renders.
type State struct {
	ScrambledWord string // current scramble shown to the player
	Score         int    // multiple of ScoreIncrease
	WordCount     int    // words presented so far, 0..MaxWords
	MaxWords      int    // words per round
}

// Change is delivered to observers when one published field takes a new value.
// State is the full snapshot right after the mutation.
type Change struct {
	Field Field
	State State
}

// Observer receives changes synchronously, in mutation order.
type Observer func(Change)
