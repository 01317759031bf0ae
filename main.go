package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/solver/internal/cli"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/history"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			log.Error().Msg("input closed before the word was found")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("solver stopped")
	}
}

// run does all the work so deferred cleanup happens before main exits.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("solver", flag.ContinueOnError)
	serve := fs.Bool("serve", false, "Serve the HTTP API instead of the interactive prompt")
	wordsFile := fs.String("words", cfg.WordsFile, "Vocabulary file, one word per line (default: built-in list)")
	opening := fs.String("opening", cfg.Opening, "Opening guess")
	workers := fs.Int("workers", cfg.Workers, "Goroutines used to score guesses")
	computeOpening := fs.Bool("compute-opening", false, "Print the best opening guess for the vocabulary and exit")
	showProgress := fs.Bool("progress", true, "Show a progress bar while scoring guesses")
	if err := fs.Parse(args); err != nil {
		return err
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	if !*serve {
		// stdout carries the transcript.
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	vocab, err := words.Load(*wordsFile)
	if err != nil {
		return fmt.Errorf("load word list: %w", err)
	}
	log.Info().Int("words", len(vocab)).Str("source", sourceName(*wordsFile)).Msg("vocabulary loaded")

	opts := []solver.Option{solver.WithWorkers(*workers)}
	if *showProgress && !*serve {
		opts = append(opts, solver.WithProgress(progressBar))
	}
	opt := solver.New(opts...)

	if *computeOpening {
		guess, score, err := opt.BestGuess(ctx, vocab, vocab)
		if err != nil {
			return fmt.Errorf("compute opening: %w", err)
		}
		fmt.Fprintf(out, "Best opening: %s (worst case %d)\n", guess, score)
		return nil
	}

	first, err := words.Parse(*opening)
	if err != nil {
		return fmt.Errorf("opening guess: %w", err)
	}

	var hist *history.Store
	if cfg.DBPath != "" {
		hist, err = history.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open history %s: %w", cfg.DBPath, err)
		}
		defer func() {
			if err := hist.Close(); err != nil {
				log.Warn().Err(err).Msg("close history")
			}
		}()
	}

	if *serve {
		srvOpts := httpserver.Options{
			Vocabulary:   vocab,
			Opening:      first,
			Guesser:      opt,
			JWTSecret:    cfg.JWTSecret,
			JWTExpiry:    cfg.JWTExpiry,
			APIKeyHash:   cfg.APIKeyHash,
			ClientOrigin: cfg.ClientOrigin,
		}
		if hist != nil {
			srvOpts.History = hist
		}
		srv := httpserver.New(store.NewMemoryStore(), srvOpts)
		log.Info().Str("port", cfg.Port).Bool("auth", cfg.JWTSecret != "").Msg("starting solver api")
		if err := srv.Start(":" + cfg.Port); err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	}

	s, err := session.New(vocab, first, opt)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if _, err := cli.Run(ctx, in, out, s); err != nil {
		return err
	}
	if hist != nil {
		if err := hist.Record(ctx, history.FromSession(s, "cli")); err != nil {
			log.Warn().Err(err).Msg("record outcome")
		}
	}
	return nil
}

// progressBar draws one bar per optimizer scan on stderr.
func progressBar(total int) solver.Progress {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Finding pattern"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
