package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/unscramble/internal/config"
	"github.com/robalobadob/unscramble/internal/history"
	"github.com/robalobadob/unscramble/internal/shell"
	"github.com/robalobadob/unscramble/internal/store"
	"github.com/robalobadob/unscramble/internal/words"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	src, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("failed to load word list")
	}
	log.Debug().Int("words", src.Len()).Int("maxWords", cfg.MaxWords).Msg("word list loaded")

	hist, err := history.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open round history")
	}
	defer hist.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh, err := shell.New(ctx, shell.Options{
		Source:      src,
		MaxWords:    cfg.MaxWords,
		Store:       store.NewMemoryStore(),
		Scoreboard:  hist,
		HistoryFile: cfg.ShellHistoryFile,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start game")
	}
	if err := sh.Loop(ctx); errors.Is(err, context.Canceled) {
		log.Info().Msg("got quit signal...")
	} else if err != nil {
		log.Error().Err(err).Msg("shell exited")
	}
}
