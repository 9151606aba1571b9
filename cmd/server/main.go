package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"callcenter-qa-go/internal/audio"
	"callcenter-qa-go/internal/batch"
	"callcenter-qa-go/internal/config"
	"callcenter-qa-go/internal/logger"
	"callcenter-qa-go/internal/processor"
	"callcenter-qa-go/internal/review"
	"callcenter-qa-go/internal/server"
	"callcenter-qa-go/internal/transcription"
	"callcenter-qa-go/internal/users"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "callcenter-qa").Info("starting server")

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	deepgram, err := transcription.NewClient(cfg.Deepgram.APIKey, cfg.Deepgram.BaseURL, nil)
	if err != nil {
		log.WithError(err).Fatal("failed to build transcription client")
	}
	openai, err := review.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, nil)
	if err != nil {
		log.WithError(err).Fatal("failed to build review client")
	}

	proc := processor.New(audio.NewValidator(nil), deepgram, openai, log.WithComponent("processor"))
	runner := batch.NewRunner(proc, log.WithComponent("batch"), cfg.Workers)
	srv := server.New(runner, users.NewStore(cfg.UsersFile), log)

	httpSrv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Handler(cfg.StaticDir),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute, // review batches block until every row is done
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", cfg.ListenAddr).Info("listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
