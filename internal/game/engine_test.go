package game

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/unscramble/internal/words"
)

func newSource(t *testing.T, list ...string) *words.Source {
	t.Helper()
	src, err := words.New(list)
	require.NoError(t, err)
	return src
}

func seeded(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func sortedRunes(s string) string {
	rs := strings.Split(s, "")
	sort.Strings(rs)
	return strings.Join(rs, "")
}

func sortedBytes(s string) string {
	b := []byte(s)
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}

func TestSingleWordRound(t *testing.T) {
	r := NewRound(seeded(1))
	require.NoError(t, r.Start(newSource(t, "cat"), 1))

	st := r.State()
	assert.Equal(t, 1, st.WordCount)
	assert.Equal(t, "cat", r.CurrentWord())
	assert.Contains(t, []string{"cta", "atc", "tac", "act", "tca"}, st.ScrambledWord)

	assert.True(t, r.SubmitGuess("CAT"))
	assert.Equal(t, ScoreIncrease, r.State().Score)

	before := r.State()
	assert.False(t, r.RequestNextWord())
	assert.Equal(t, before, r.State())
	assert.Equal(t, "cat", r.CurrentWord())
	assert.True(t, r.Done())
}

func TestScrambleIsDistinctAnagram(t *testing.T) {
	src, err := words.Load("")
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	for _, w := range src.Words() {
		for i := 0; i < 5; i++ {
			s, err := Scramble(w, rng)
			require.NoError(t, err)
			assert.NotEqual(t, w, s)
			assert.Equal(t, sortedRunes(w), sortedRunes(s), w)
			assert.Equal(t, sortedBytes(w), sortedBytes(s), w)
		}
	}
}

// stuckRand never moves anything, forcing Scramble's fallback.
type stuckRand struct{}

func (stuckRand) Intn(int) int                 { return 0 }
func (stuckRand) Shuffle(int, func(i, j int)) {}

func TestScrambleFallbackSwap(t *testing.T) {
	s, err := Scramble("cat", stuckRand{})
	require.NoError(t, err)
	assert.Equal(t, "act", s)

	s, err = Scramble("aab", stuckRand{})
	require.NoError(t, err)
	assert.Equal(t, "baa", s)
}

func TestScrambleRejectsUnscramblable(t *testing.T) {
	for _, w := range []string{"aaa", "a\xffb", "\xff\xfe"} {
		_, err := Scramble(w, stuckRand{})
		assert.ErrorIs(t, err, ErrUnscramblable, "%q", w)
	}
}

func TestInvalidUTF8NeverReachesRound(t *testing.T) {
	src := newSource(t, "a\xffb", "lemon")
	assert.Equal(t, []string{"lemon"}, src.Words())

	r := NewRound(WithRand(stuckRand{}))
	require.NoError(t, r.Start(src, 1))
	assert.Equal(t, "lemon", r.CurrentWord())
	assert.Equal(t, "elmon", r.State().ScrambledWord)
}

func TestWordCountCapAndNoRepeats(t *testing.T) {
	src := newSource(t, "lemon", "melon", "apple", "grape", "mango", "peach", "plum", "kiwi")
	r := NewRound(seeded(3))
	require.NoError(t, r.Start(src, 5))

	for r.RequestNextWord() {
	}
	assert.Equal(t, 5, r.State().WordCount)

	used := r.UsedWords()
	assert.Len(t, used, 5)
	seen := map[string]bool{}
	for _, w := range used {
		assert.False(t, seen[w], "repeated %q", w)
		seen[w] = true
	}

	before := r.State()
	assert.False(t, r.RequestNextWord())
	assert.Equal(t, before, r.State())
}

func TestAdvanceAtCapLeavesState(t *testing.T) {
	r := NewRound(seeded(2))
	require.NoError(t, r.Start(newSource(t, "cat", "dog"), 1))
	before := r.State()

	ok, err := r.Advance()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, r.State())
}

func TestExhaustedSource(t *testing.T) {
	r := NewRound(seeded(4))
	require.NoError(t, r.Start(newSource(t, "cat", "dog"), 5))
	ok, err := r.Advance()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, r.Done())

	before := r.State()
	ok, err = r.Advance()
	assert.ErrorIs(t, err, ErrExhaustedWordSource)
	assert.False(t, ok)
	assert.Equal(t, before, r.State())

	assert.False(t, r.RequestNextWord())
	assert.Equal(t, before, r.State())
	assert.ElementsMatch(t, []string{"cat", "dog"}, r.UsedWords())
}

func TestSubmitGuess(t *testing.T) {
	r := NewRound(seeded(5))
	require.NoError(t, r.Start(newSource(t, "lemon", "grape"), 2))
	word := r.CurrentWord()

	assert.False(t, r.SubmitGuess(""))
	assert.False(t, r.SubmitGuess("nope"))
	assert.False(t, r.SubmitGuess(word+" "))
	assert.Equal(t, 0, r.State().Score)

	assert.True(t, r.SubmitGuess(strings.ToUpper(word)))
	assert.True(t, r.SubmitGuess(word))
	assert.Equal(t, 2*ScoreIncrease, r.State().Score)
	assert.Equal(t, word, r.CurrentWord())
}

func TestSubmitGuessBeforeStart(t *testing.T) {
	r := NewRound()
	assert.False(t, r.SubmitGuess("cat"))
	assert.False(t, r.RequestNextWord())
	_, err := r.Advance()
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, r.Reset(), ErrNotStarted)
}

func TestStartInvalid(t *testing.T) {
	r := NewRound()
	assert.ErrorIs(t, r.Start(nil, 3), ErrInvalidRound)
	assert.ErrorIs(t, r.Start(newSource(t, "cat"), 0), ErrInvalidRound)
	assert.Equal(t, State{}, r.State())
	assert.False(t, r.Done())
}

func TestReset(t *testing.T) {
	r := NewRound(seeded(6))
	require.NoError(t, r.Start(newSource(t, "lemon", "grape", "mango", "peach"), 4))
	r.SubmitGuess(r.CurrentWord())
	r.RequestNextWord()
	r.RequestNextWord()

	require.NoError(t, r.Reset())
	st := r.State()
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 1, st.WordCount)
	assert.Equal(t, 4, st.MaxWords)
	assert.Len(t, r.UsedWords(), 1)
	assert.Equal(t, r.CurrentWord(), r.UsedWords()[0])
}

func TestObserversSeeDistinctChangesInOrder(t *testing.T) {
	r := NewRound(seeded(8))
	var got []Change
	unsubscribe := r.Subscribe(func(c Change) { got = append(got, c) })

	require.NoError(t, r.Start(newSource(t, "lemon", "grape", "mango"), 2))
	require.Len(t, got, 2)
	assert.Equal(t, FieldScrambledWord, got[0].Field)
	assert.Equal(t, FieldWordCount, got[1].Field)
	assert.Equal(t, 1, got[1].State.WordCount)

	got = nil
	r.SubmitGuess("wrong")
	assert.Empty(t, got)
	r.SubmitGuess(r.CurrentWord())
	require.Len(t, got, 1)
	assert.Equal(t, FieldScore, got[0].Field)
	assert.Equal(t, ScoreIncrease, got[0].State.Score)

	got = nil
	require.NoError(t, r.Reset())
	fields := make([]Field, len(got))
	for i, c := range got {
		fields[i] = c.Field
	}
	assert.Equal(t, []Field{FieldScore, FieldWordCount, FieldScrambledWord, FieldWordCount}, fields)
	assert.Equal(t, 0, got[1].State.WordCount)

	got = nil
	unsubscribe()
	unsubscribe()
	r.RequestNextWord()
	assert.Empty(t, got)
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	r := NewRound(seeded(9))
	var a, b int
	var stopA func()
	stopA = r.Subscribe(func(Change) { a++; stopA() })
	r.Subscribe(func(Change) { b++ })

	require.NoError(t, r.Start(newSource(t, "lemon", "grape"), 2))
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "scrambledWord", FieldScrambledWord.String())
	assert.Equal(t, "score", FieldScore.String())
	assert.Equal(t, "wordCount", FieldWordCount.String())
	assert.Equal(t, "unknown", Field(42).String())
}
