// internal/game/engine.go
//
// Round engine for a single word-scramble round.
// Responsibilities:
//   - Start/Reset a round over a words.Source with a word cap.
//   - Pick unused words uniformly at random and scramble them.
//   - Check guesses case-insensitively and keep the score.
//   - Publish scrambledWord/score/wordCount changes to observers.
//
// Notes:
//   - Unused words are tracked explicitly, so picking never loops on
//     words that were already shown.
//   - A Round is not safe for concurrent use; callers serialize access.

package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/unscramble/internal/words"
)

// Round holds the mutable state of one round.
type Round struct {
	rng Rand
	pub publisher

	src      *words.Source
	maxWords int
	started  bool

	currentWord   string
	scrambledWord string
	used          []string // words presented this round, in order
	remaining     []string // words not yet presented
	score         int
	wordCount     int
}

// Option configures a Round.
type Option func(*Round)

// WithRand replaces the default frand-backed randomness.
func WithRand(rng Rand) Option {
	return func(r *Round) { r.rng = rng }
}

// NewRound returns an unstarted round. Call Start before anything else.
func NewRound(opts ...Option) *Round {
	r := &Round{rng: frandSource{}}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Start initializes a fresh round over src and presents the first word.
// Calling Start again discards all previous round state.
func (r *Round) Start(src *words.Source, maxWords int) error {
	if src == nil || maxWords < 1 {
		return fmt.Errorf("%w: maxWords=%d", ErrInvalidRound, maxWords)
	}
	if src.Len() < maxWords {
		log.Warn().Int("words", src.Len()).Int("maxWords", maxWords).
			Msg("word source smaller than round length; round will end early")
	}
	r.src, r.maxWords, r.started = src, maxWords, true
	r.currentWord = ""
	r.used = make([]string, 0, min(maxWords, src.Len()))
	r.remaining = src.Words()

	r.score = 0
	r.pub.publish(FieldScore, r.State())
	r.wordCount = 0
	r.pub.publish(FieldWordCount, r.State())

	if _, err := r.Advance(); err != nil {
		return err
	}
	log.Debug().Int("maxWords", maxWords).Str("scrambled", r.scrambledWord).Msg("round started")
	return nil
}

// Reset restarts the round with the same source and cap.
func (r *Round) Reset() error {
	if !r.started {
		return ErrNotStarted
	}
	return r.Start(r.src, r.maxWords)
}

// Advance presents a new unused word. It reports whether the word count
// before the call was below the cap; at the cap it returns false and
// changes nothing. If every word in the source was used it returns
// ErrExhaustedWordSource, also without changing state.
func (r *Round) Advance() (bool, error) {
	if !r.started {
		return false, ErrNotStarted
	}
	if r.wordCount >= r.maxWords {
		return false, nil
	}
	if len(r.remaining) == 0 {
		return false, ErrExhaustedWordSource
	}

	i := r.rng.Intn(len(r.remaining))
	word := r.remaining[i]
	scrambled, err := Scramble(word, r.rng)
	if err != nil {
		return false, err
	}
	last := len(r.remaining) - 1
	r.remaining[i] = r.remaining[last]
	r.remaining = r.remaining[:last]
	r.used = append(r.used, word)
	r.currentWord = word

	r.scrambledWord = scrambled
	r.pub.publish(FieldScrambledWord, r.State())
	r.wordCount++
	r.pub.publish(FieldWordCount, r.State())
	return true, nil
}

// RequestNextWord moves to the next word if the round has room for one.
// It returns false, leaving state untouched, once the cap is reached or
// the source has no unused word left.
func (r *Round) RequestNextWord() bool {
	if !r.started || r.wordCount >= r.maxWords {
		return false
	}
	ok, err := r.Advance()
	if err != nil {
		log.Info().Err(err).Int("wordCount", r.wordCount).Msg("no next word; round complete")
		return false
	}
	return ok
}

// SubmitGuess reports whether candidate matches the current word, ignoring
// letter case. A match adds ScoreIncrease; the word stays the same until
// the caller asks for the next one.
func (r *Round) SubmitGuess(candidate string) bool {
	if !r.started || candidate == "" || !strings.EqualFold(candidate, r.currentWord) {
		return false
	}
	r.score += ScoreIncrease
	r.pub.publish(FieldScore, r.State())
	return true
}

// Subscribe registers an observer for published changes and returns a
// func that removes it.
func (r *Round) Subscribe(fn Observer) func() {
	return r.pub.subscribe(fn)
}

// State returns a snapshot of the published values.
func (r *Round) State() State {
	return State{
		ScrambledWord: r.scrambledWord,
		Score:         r.score,
		WordCount:     r.wordCount,
		MaxWords:      r.maxWords,
	}
}

// CurrentWord returns the answer for the active word.
func (r *Round) CurrentWord() string { return r.currentWord }

// UsedWords returns the words presented this round, in order.
func (r *Round) UsedWords() []string { return append([]string(nil), r.used...) }

// Done reports whether the cap is reached or the source is exhausted.
func (r *Round) Done() bool {
	return r.started && (r.wordCount >= r.maxWords || len(r.remaining) == 0)
}
