package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lexigame/hangman/internal/config"
	"github.com/lexigame/hangman/internal/httpserver"
	"github.com/lexigame/hangman/internal/llm"
	"github.com/lexigame/hangman/internal/store"
	"github.com/lexigame/hangman/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(cfg.WordlistDir); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	db, err := openDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ai := llm.New(nil)
	if cfg.LLMEnabled() {
		ai = llm.New(llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel))
		log.Info().Str("model", cfg.OpenAIModel).Msg("word generation enabled")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, ai, cfg)
	log.Info().Str("port", cfg.Port).Msg("starting hangman-api")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
