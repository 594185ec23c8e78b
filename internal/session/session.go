// internal/session/session.go
//
// Session owns one game.Round for as long as the player keeps it, which is
// longer than any view that renders it. Views attach and detach freely;
// round state is untouched by either.
//
// Responsibilities:
//   - Create and start the round (random session ID, word source, cap).
//   - Submit/Skip: the screen flow around the round (score, move on,
//     detect the end of the round).
//   - Record each finished round once through a Recorder.
//   - Restart ("play again").
//
// A Session is not safe for concurrent use.

package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/unscramble/internal/game"
	"github.com/robalobadob/unscramble/internal/history"
	"github.com/robalobadob/unscramble/internal/words"
)

// Recorder stores finished rounds. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, r history.Result) error
}

// Outcome describes what a Submit or Skip did.
type Outcome struct {
	Correct  bool       // the guess matched (always false for Skip)
	Finished bool       // the round has no next word
	State    game.State // snapshot after the action
}

// Session is a long-lived owner of one round.
type Session struct {
	ID        string
	StartedAt time.Time

	round    *game.Round
	rec      Recorder
	finished bool
}

// New creates a session and starts its first round. rec may be nil.
func New(src *words.Source, maxWords int, rec Recorder, opts ...game.Option) (*Session, error) {
	s := &Session{
		ID:        randomID(),
		StartedAt: time.Now().UTC(),
		round:     game.NewRound(opts...),
		rec:       rec,
	}
	if err := s.round.Start(src, maxWords); err != nil {
		return nil, err
	}
	log.Info().Str("session", s.ID).Int("maxWords", maxWords).Msg("session started")
	return s, nil
}

// Round exposes the underlying round for read access.
func (s *Session) Round() *game.Round { return s.round }

// State returns the current round snapshot.
func (s *Session) State() game.State { return s.round.State() }

// Finished reports whether the current round is over.
func (s *Session) Finished() bool { return s.finished }

// Attach subscribes a view. The view is first sent the current value of
// every field so it can render without waiting for the next change.
// The returned func detaches the view.
func (s *Session) Attach(obs game.Observer) (detach func()) {
	st := s.round.State()
	for _, f := range []game.Field{game.FieldScrambledWord, game.FieldScore, game.FieldWordCount} {
		obs(game.Change{Field: f, State: st})
	}
	return s.round.Subscribe(obs)
}

// Submit checks word against the current answer. A correct guess scores
// and moves on to the next word; a wrong one changes nothing. Once the
// round is finished Submit is a no-op.
func (s *Session) Submit(ctx context.Context, word string) Outcome {
	if s.finished {
		return Outcome{Finished: true, State: s.round.State()}
	}
	if !s.round.SubmitGuess(word) {
		log.Debug().Str("session", s.ID).Msg("wrong guess")
		return Outcome{State: s.round.State()}
	}
	out := Outcome{Correct: true}
	out.Finished = !s.next(ctx)
	out.State = s.round.State()
	return out
}

// Skip moves to the next word without scoring.
func (s *Session) Skip(ctx context.Context) Outcome {
	if s.finished {
		return Outcome{Finished: true, State: s.round.State()}
	}
	out := Outcome{}
	out.Finished = !s.next(ctx)
	out.State = s.round.State()
	return out
}

// Restart begins a new round with the same source and cap.
func (s *Session) Restart() error {
	if err := s.round.Reset(); err != nil {
		return err
	}
	s.finished = false
	log.Info().Str("session", s.ID).Msg("round restarted")
	return nil
}

// next requests the next word, finishing the round when there is none.
func (s *Session) next(ctx context.Context) bool {
	if s.round.RequestNextWord() {
		return true
	}
	s.finish(ctx)
	return false
}

// finish marks the round over and records it (best effort).
func (s *Session) finish(ctx context.Context) {
	s.finished = true
	st := s.round.State()
	log.Info().Str("session", s.ID).Int("score", st.Score).Int("words", st.WordCount).Msg("round finished")
	if s.rec == nil {
		return
	}
	res := history.Result{
		SessionID:  s.ID,
		Score:      st.Score,
		Words:      st.WordCount,
		MaxWords:   st.MaxWords,
		FinishedAt: time.Now().UTC(),
	}
	if err := s.rec.Record(ctx, res); err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("record round")
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
