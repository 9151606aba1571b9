package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"callcenter-qa-go/internal/audio"
	"callcenter-qa-go/internal/batch"
	"callcenter-qa-go/internal/config"
	"callcenter-qa-go/internal/health"
	"callcenter-qa-go/internal/logger"
	"callcenter-qa-go/internal/processor"
	"callcenter-qa-go/internal/review"
	"callcenter-qa-go/internal/table"
	"callcenter-qa-go/internal/transcription"
	"callcenter-qa-go/internal/watch"
)

func main() {
	_ = godotenv.Load() // loads .env

	watchMode := flag.Bool("watch", false, "rerun the batch when the input workbook changes")
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "optional YAML config file")
	flag.Parse()

	log := logger.New()
	baseLog := log.WithField("service", "callcenter-qa-batch")
	baseLog.Info("starting batch run")

	cfg, err := config.Load(*configPath)
	if err != nil {
		baseLog.WithError(err).Fatal("failed to load config")
	}

	deepgram, err := transcription.NewClient(cfg.Deepgram.APIKey, cfg.Deepgram.BaseURL, nil)
	if err != nil {
		baseLog.WithError(err).Fatal("failed to build transcription client")
	}
	openai, err := review.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, nil)
	if err != nil {
		baseLog.WithError(err).Fatal("failed to build review client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := health.WaitReady(ctx, baseLog.WithField("component", "health"), nil, cfg.Deepgram.BaseURL, cfg.OpenAI.BaseURL); err != nil {
		// Continue anyway: per-row failures land inline in the table.
		baseLog.WithError(err).Warn("upstream reachability check failed")
	}

	runOnce := func() error {
		runLog := baseLog.WithField("run_id", uuid.New().String())

		if _, err := os.Stat(cfg.InputFile); os.IsNotExist(err) {
			runLog.WithField("path", cfg.InputFile).Info("input workbook missing, creating sample")
			if err := table.CreateDefault(cfg.InputFile); err != nil {
				return err
			}
			runLog.Info("fill in the sample row with real data (direct-download audio links)")
		}

		tbl, err := table.Load(cfg.InputFile)
		if err != nil {
			return err
		}
		runLog.WithField("rows", len(tbl.Records)).Info("workbook loaded")

		proc := processor.New(audio.NewValidator(nil), deepgram, openai, runLog.WithField("component", "processor"))
		runner := batch.NewRunner(proc, runLog.WithField("component", "batch"), cfg.Workers)
		if err := runner.Run(ctx, tbl); err != nil {
			return err
		}

		if err := table.Save(tbl, cfg.OutputFile); err != nil {
			return err
		}
		runLog.WithField("path", cfg.OutputFile).Info("results saved")
		return nil
	}

	if *watchMode {
		if err := runOnce(); err != nil {
			baseLog.WithError(err).Error("initial batch run failed")
		}
		if err := watch.Run(ctx, baseLog.WithField("component", "watch"), cfg.InputFile, runOnce); err != nil && err != context.Canceled {
			baseLog.WithError(err).Fatal("watch terminated")
		}
		return
	}

	if err := runOnce(); err != nil {
		baseLog.WithError(err).Fatal("batch run failed")
	}
}
