package main

import (
	"context"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/prometheus/client_golang/prometheus"
	zLog "github.com/rs/zerolog/log"
	"go-responsegen/internal/agents/coordinator/handler"
	"go-responsegen/internal/api"
	"go-responsegen/pkg/config"
	"go-responsegen/pkg/llm"
	"go-responsegen/pkg/logger"
	"go-responsegen/pkg/metrics"
	"go-responsegen/pkg/parser"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// RESPONSEGEN_CONFIG points at the YAML config; without it the defaults and
// environment (OPENAI_API_KEY, ...) are used.
func main() {
	log.Println("starting server")
	cfg, err := config.Load(os.Getenv("RESPONSEGEN_CONFIG"))
	if err != nil {
		log.Panicf("failed to load config: %v", err)
	}

	err = logger.NewGlobal(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		log.Panicf("failed to initialize logger: %v", err)
	}

	registry := parser.NewRegistry()
	if err := cfg.Validate(registry); err != nil {
		zLog.Panic().Err(err).Msg("invalid config")
	}

	model, err := llm.New(cfg.LLM)
	if err != nil {
		zLog.Panic().Err(err).Msg("failed to create llm client")
	}

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		zLog.Panic().Err(err).Msg("failed to register metrics")
	}

	system := actor.NewActorSystem()
	app := api.New(system.Root, cfg.Server.Port, handler.Deps{
		LLM:        model,
		Registry:   registry,
		Roles:      cfg.Roles,
		Task:       cfg.Task,
		Dimensions: cfg.Dimensions,
		Metrics:    m,
	})

	go func() {
		err := app.Start()
		if err != nil {
			zLog.Panic().Err(err).Msg("server crash")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	stop()
	zLog.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		zLog.Panic().Err(err).Msg("server forced to shutdown")
	}

	zLog.Info().Msg("server exiting")
}
