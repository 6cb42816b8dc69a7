package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/bootstrap"
	"github.com/Domenick1991/airport/internal/cache"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/baggage"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/loyalty"
	"github.com/Domenick1991/airport/internal/service/payment"
	"github.com/Domenick1991/airport/internal/service/security"
	"github.com/Domenick1991/airport/internal/service/stats"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var events *kafka.Emitter
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, zl)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			zl.Warn("kafka unavailable, events will be dropped", zap.Error(err))
		}
		events = kafka.NewEmitter(producer, cfg.Kafka.EventsTopic,
			kafka.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
			kafka.WithEmitterLogger(zl))
	} else {
		zl.Warn("no kafka brokers configured, events disabled")
	}

	flightOpts := []flights.FlightServiceOption{flights.WithLogger(zl), flights.WithEmitter(events)}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Airport.RouteCacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			zl.Warn("redis unavailable, route cache and seat holds disabled", zap.Error(err))
		} else {
			flightOpts = append(flightOpts, flights.WithCache(redisCache, time.Duration(cfg.Airport.SeatHoldTTLSeconds)*time.Second))
		}
	}

	flightRepo := repository.NewFlightRepository()
	bookingRepo := repository.NewBookingRepository()
	baggageRepo := repository.NewBaggageRepository()
	loyaltyRepo := repository.NewLoyaltyRepository()

	bookingService := booking.NewBookingService(
		bookingRepo,
		repository.NewTicketRepository(),
		booking.WithLogger(zl),
		booking.WithEmitter(events),
	)
	flightService := flights.NewFlightService(flightRepo, repository.NewGateRepository(), flightOpts...)
	paymentService := payment.NewPaymentService(repository.NewPaymentRepository(), cfg.Airport.DefaultCurrency,
		payment.WithLogger(zl),
		payment.WithEmitter(events))
	baggageService := baggage.NewBaggageService(baggageRepo, cfg.Airport.MaxBaggageWeightKG,
		baggage.WithLogger(zl),
		baggage.WithEmitter(events))
	securityService := security.NewSecurityService(repository.NewBadgeRepository(),
		security.WithLogger(zl),
		security.WithEmitter(events))
	loyaltyService := loyalty.NewLoyaltyService(loyaltyRepo,
		loyalty.WithLogger(zl),
		loyalty.WithEmitter(events))
	statsService := stats.NewStatsService(flightRepo, bookingRepo, baggageRepo, loyaltyRepo, stats.WithLogger(zl))

	handlers := bootstrap.Handlers{
		Bookings: api.NewBookingHandler(bookingService),
		Flights:  api.NewFlightHandler(flightService),
		Payments: api.NewPaymentHandler(paymentService, bookingService, loyaltyService, zl),
		Baggage:  api.NewBaggageHandler(baggageService),
		Security: api.NewSecurityHandler(securityService),
		Loyalty:  api.NewLoyaltyHandler(loyaltyService),
		Stats:    api.NewStatsHandler(statsService),
	}

	zl.Info("starting airport",
		zap.String("name", cfg.Airport.Name),
		zap.String("currency", cfg.Airport.DefaultCurrency))

	if err := bootstrap.Run(ctx, cfg, handlers, zl); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
