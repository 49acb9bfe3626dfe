package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/console"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/lexicon"
	"github.com/robalobadob/wordscramble/internal/round"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Usage:
//
//	wordscramble        serve the HTTP API
//	wordscramble play   play a round in the terminal
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWords, err := words.Load(cfg.StartWordsFile, cfg.Language)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load start words")
	}

	oracle, dictSize, closeOracle, err := openOracle(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open lexicon")
	}
	defer closeOracle()

	random := words.NewRandomSource(startWords, nil)

	if len(os.Args) > 1 && os.Args[1] == "play" {
		eng, err := round.New(random, oracle, round.Options{
			Language: cfg.Language,
			Observer: console.NewPrinter(os.Stdout),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build round")
		}
		if err := console.Play(ctx, eng, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
			log.Fatal().Err(err).Msg("play")
		}
		return
	}

	daily, err := words.NewDailySource(startWords, cfg.DailySalt, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid daily salt")
	}

	srv := httpserver.New(httpserver.Options{
		Store:        store.NewMemoryStore(),
		Random:       random,
		Daily:        daily,
		Oracle:       oracle,
		Language:     cfg.Language,
		Secret:       cfg.SessionSecret,
		TokenTTL:     cfg.SessionTTL,
		Secure:       cfg.AppEnv == "production",
		ClientOrigin: cfg.ClientOrigin,
		WordStats: func() map[string]int {
			return map[string]int{"start": random.Len(), "dictionary": dictSize()}
		},
	})
	go srv.Sweep(ctx, sweepInterval(cfg.RoundTTL), cfg.RoundTTL)

	log.Info().Str("port", cfg.Port).Str("language", cfg.Language).Int("startWords", len(startWords)).
		Msg("starting wordscramble")
	if err := srv.Serve(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openOracle returns the configured spell-check oracle, a dictionary size
// reporter and a close func. With LEXICON_DSN set, an empty SQLite lexicon is
// seeded from the dictionary list on first start.
func openOracle(ctx context.Context, cfg config.Config) (round.Oracle, func() int, func(), error) {
	if cfg.LexiconDSN == "" {
		mem, err := lexicon.LoadMemory(cfg.Language, cfg.LexiconFile)
		if err != nil {
			return nil, nil, nil, err
		}
		return mem, func() int { return mem.Len(cfg.Language) }, func() {}, nil
	}

	lx, err := lexicon.OpenSQLite(cfg.LexiconDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	n, err := lx.Count(ctx, cfg.Language)
	if err != nil {
		_ = lx.Close()
		return nil, nil, nil, err
	}
	if n == 0 {
		list, err := lexicon.ReadList(cfg.LexiconFile)
		if err != nil {
			_ = lx.Close()
			return nil, nil, nil, err
		}
		if n, err = lx.Import(ctx, cfg.Language, list); err != nil {
			_ = lx.Close()
			return nil, nil, nil, err
		}
		log.Info().Int("words", n).Str("dsn", cfg.LexiconDSN).Msg("seeded lexicon")
	}
	size := func() int {
		c, err := lx.Count(context.Background(), cfg.Language)
		if err != nil {
			log.Warn().Err(err).Msg("count lexicon")
		}
		return c
	}
	closeFn := func() {
		if err := lx.Close(); err != nil {
			log.Warn().Err(err).Msg("close lexicon")
		}
	}
	return lx, size, closeFn, nil
}

func sweepInterval(ttl time.Duration) time.Duration {
	if iv := ttl / 6; iv > time.Minute {
		return iv
	}
	return time.Minute
}
