// internal/shell/shell.go
//
// Interactive terminal view for the game.
// Responsibilities:
//   - Readline loop: read a line, dispatch a command.
//   - Render every published round change (scramble, score, word count).
//   - Drive the session: guesses, skips, restarts, final score.
//   - Keep several sessions in the store and switch the view between them;
//     switching detaches the view from one session and attaches it to the
//     other without touching either round.

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/unscramble/internal/game"
	"github.com/robalobadob/unscramble/internal/history"
	"github.com/robalobadob/unscramble/internal/session"
	"github.com/robalobadob/unscramble/internal/store"
	"github.com/robalobadob/unscramble/internal/words"
)

// Scoreboard records finished rounds and lists the best ones.
type Scoreboard interface {
	session.Recorder
	Top(ctx context.Context, limit int) ([]history.Result, error)
}

// Options configures a Shell.
type Options struct {
	Source      *words.Source
	MaxWords    int
	Store       store.Store
	Scoreboard  Scoreboard // optional
	HistoryFile string     // readline history; empty for none
	Out         io.Writer  // defaults to os.Stdout
	RoundOpts   []game.Option
}

// Shell is the terminal view. It owns no round state itself.
type Shell struct {
	opts   Options
	out    io.Writer
	cur    *session.Session
	detach func()
}

// New creates the first session and attaches the shell to it.
func New(ctx context.Context, opts Options) (*Shell, error) {
	if opts.Store == nil {
		return nil, errors.New("shell: store is required")
	}
	sh := &Shell{opts: opts, out: opts.Out}
	if sh.out == nil {
		sh.out = os.Stdout
	}
	if _, err := sh.newSession(ctx); err != nil {
		return nil, err
	}
	return sh, nil
}

// Current returns the session the shell is attached to.
func (sh *Shell) Current() *session.Session { return sh.cur }

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// lineReader is the part of *readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// Loop runs the readline loop until exit, EOF, an interrupt on an empty
// line, or cancellation of ctx. On cancellation it returns ctx.Err().
func (sh *Shell) Loop(ctx context.Context) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32munscramble>\033[0m ",
		HistoryFile:     sh.opts.HistoryFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	sh.out = l.Stdout()
	usage(sh.out)
	return sh.run(ctx, l)
}

// run reads and executes lines from l, closing l when it returns. A
// cancelled ctx closes l from another goroutine to unblock Readline.
func (sh *Shell) run(ctx context.Context, l lineReader) error {
	var once sync.Once
	closeReader := func() { once.Do(func() { _ = l.Close() }) }
	defer closeReader()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			closeReader()
		case <-done:
		}
	}()

	for {
		line, err := l.Readline()
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debug().Err(ctxErr).Msg("readline loop cancelled")
			return ctxErr
		}
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		quit, err := sh.Execute(ctx, line)
		if err != nil {
			showMessage("error: "+err.Error(), sh.out)
		}
		if quit {
			break
		}
	}
	log.Debug().Msg("exiting readline loop")
	return nil
}

// Execute runs one command line. It reports whether the shell should quit.
func (sh *Shell) Execute(ctx context.Context, line string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return true, err
	}
	cmd, err := extractFields(line)
	if err == errNoData {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	log.Debug().Str("cmd", cmd.cmd).Strs("args", cmd.args).Msg("command")

	switch cmd.cmd {
	case "exit", "quit":
		return true, nil
	case "help", "?":
		usage(sh.out)
	case "guess", "g":
		if len(cmd.args) == 0 {
			return false, errors.New("usage: guess <word>")
		}
		sh.guess(ctx, strings.Join(cmd.args, " "))
	case "skip", "s":
		sh.report(sh.cur.Skip(ctx))
	case "status":
		sh.status()
	case "restart":
		if err := sh.cur.Restart(); err != nil {
			return false, err
		}
		showMessage("New round!", sh.out)
	case "new":
		if _, err := sh.newSession(ctx); err != nil {
			return false, err
		}
	case "sessions":
		return false, sh.listSessions(ctx)
	case "switch":
		if len(cmd.args) != 1 {
			return false, errors.New("usage: switch <session-id>")
		}
		return false, sh.switchTo(ctx, cmd.args[0])
	case "scores":
		return false, sh.scores(ctx)
	default:
		// Anything else is a guess.
		sh.guess(ctx, strings.Join(append([]string{cmd.cmd}, cmd.args...), " "))
	}
	return false, nil
}

func (sh *Shell) guess(ctx context.Context, word string) {
	out := sh.cur.Submit(ctx, word)
	if !out.Correct && !out.Finished {
		if !sh.opts.Source.Contains(word) {
			showMessage(fmt.Sprintf("Wrong answer! %q is not in the word list.", word), sh.out)
			return
		}
		showMessage("Wrong answer! Try again.", sh.out)
		return
	}
	sh.report(out)
}

// report prints the final score once a round is over.
func (sh *Shell) report(out session.Outcome) {
	if !out.Finished {
		return
	}
	showMessage(fmt.Sprintf("Congratulations! You scored %d.", out.State.Score), sh.out)
	showMessage("Type 'restart' to play again or 'exit' to quit.", sh.out)
}

func (sh *Shell) status() {
	st := sh.cur.State()
	showMessage(fmt.Sprintf("Session %s: %s | score %d | word %d of %d",
		sh.cur.ID, st.ScrambledWord, st.Score, st.WordCount, st.MaxWords), sh.out)
	switch {
	case sh.cur.Finished():
		showMessage("Round over.", sh.out)
	case sh.cur.Round().Done():
		showMessage("Last word!", sh.out)
	}
}

// render prints one published change.
func (sh *Shell) render(c game.Change) {
	switch c.Field {
	case game.FieldScrambledWord:
		showMessage("Unscramble: "+c.State.ScrambledWord, sh.out)
	case game.FieldScore:
		showMessage(fmt.Sprintf("Score: %d", c.State.Score), sh.out)
	case game.FieldWordCount:
		showMessage(fmt.Sprintf("Word %d of %d", c.State.WordCount, c.State.MaxWords), sh.out)
	}
}

// attach moves the view onto s.
func (sh *Shell) attach(s *session.Session) {
	if sh.detach != nil {
		sh.detach()
	}
	sh.cur = s
	sh.detach = s.Attach(sh.render)
}

func (sh *Shell) newSession(ctx context.Context) (*session.Session, error) {
	var rec session.Recorder
	if sh.opts.Scoreboard != nil {
		rec = sh.opts.Scoreboard
	}
	s, err := session.New(sh.opts.Source, sh.opts.MaxWords, rec, sh.opts.RoundOpts...)
	if err != nil {
		return nil, err
	}
	if err := sh.opts.Store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	showMessage("Session "+s.ID, sh.out)
	sh.attach(s)
	return s, nil
}

func (sh *Shell) switchTo(ctx context.Context, id string) error {
	s, err := sh.opts.Store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("switch %s: %w", id, err)
	}
	showMessage("Session "+s.ID, sh.out)
	sh.attach(s)
	return nil
}

func (sh *Shell) listSessions(ctx context.Context) error {
	list, err := sh.opts.Store.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		mark := " "
		if s == sh.cur {
			mark = "*"
		}
		st := s.State()
		showMessage(fmt.Sprintf("%s %s  score %-4d word %d of %d", mark, s.ID, st.Score, st.WordCount, st.MaxWords), sh.out)
	}
	return nil
}

func (sh *Shell) scores(ctx context.Context) error {
	if sh.opts.Scoreboard == nil {
		showMessage("No scoreboard.", sh.out)
		return nil
	}
	top, err := sh.opts.Scoreboard.Top(ctx, 10)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		showMessage("No finished rounds yet.", sh.out)
		return nil
	}
	for i, r := range top {
		showMessage(fmt.Sprintf("%2d. %4d  (%d/%d words, session %s)", i+1, r.Score, r.Words, r.MaxWords, r.SessionID), sh.out)
	}
	return nil
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}
