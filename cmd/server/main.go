package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"velora/internal/api"
	"velora/internal/config"
	"velora/internal/domain"
	"velora/internal/events"
	"velora/internal/logging"
	"velora/internal/metrics"
	"velora/internal/repository"
	"velora/internal/seo"
	"velora/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	logger := baseLogger.With().Str("component", "server-main").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	repo := initRepository(ctx, cfg, &logger)

	eventBus := events.NewEventBus()
	subscribeBookingEvents(eventBus, &logger)

	catalog := service.NewCatalog(cfg.Services, &logger)
	store, err := service.NewBookingStore(ctx, repo, eventBus, &logger)
	if err != nil {
		return err
	}

	composer := seo.New(cfg.Site, catalog.ServiceIDs())

	server := api.NewHTTPServer(cfg.API, store, catalog, composer, cfg.Exports.Path, cfg.Monitoring.PrometheusEnabled, &logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("API server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// initRepository wires redis behind the memory failover when enabled, and
// falls back to memory alone when redis is disabled or unreachable.
func initRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.BookingRepository {
	memory := repository.NewMemoryBookingRepository()
	if !cfg.Redis.Enabled {
		logger.Info().Msg("redis disabled, using in-memory booking storage")
		return memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := repository.Ping(pingCtx, client); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, starting on in-memory booking storage")
	}

	primary := repository.NewRedisBookingRepository(client)
	return repository.NewFailoverBookingRepository(primary, memory, logger)
}

func subscribeBookingEvents(bus *events.EventBus, logger *zerolog.Logger) {
	logEvent := func(event *events.Event) error {
		logger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("booking event")
		return nil
	}

	for _, eventType := range []string{
		events.EventBookingStarted,
		events.EventBookingUpdated,
		events.EventBookingConfirmed,
		events.EventBookingCancelled,
		events.EventHistoryCleared,
	} {
		bus.Subscribe(eventType, logEvent)
	}
}
