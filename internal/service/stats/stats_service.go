package stats

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type StatsUseCase interface {
	Snapshot(ctx context.Context) (*domain.Statistics, error)
}

// StatsService aggregates counts straight from the repositories the other
// services write to.
type StatsService struct {
	flights  repository.FlightRepository
	bookings repository.BookingRepository
	baggage  repository.BaggageRepository
	loyalty  repository.LoyaltyRepository
	logger   *zap.Logger
}

type StatsServiceOption func(*StatsService)

func WithLogger(logger *zap.Logger) StatsServiceOption {
	return func(s *StatsService) {
		s.logger = logger
	}
}

func NewStatsService(
	flights repository.FlightRepository,
	bookings repository.BookingRepository,
	baggage repository.BaggageRepository,
	loyalty repository.LoyaltyRepository,
	opts ...StatsServiceOption,
) *StatsService {
	service := &StatsService{
		flights:  flights,
		bookings: bookings,
		baggage:  baggage,
		loyalty:  loyalty,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Snapshot counts a flight as on time unless it is delayed or cancelled, and a
// booking as a passenger unless it was cancelled.
func (s *StatsService) Snapshot(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics

	for _, f := range s.flights.All() {
		stats.TotalFlights++
		switch f.Status {
		case domain.FlightStatusDelayed:
			stats.DelayedFlights++
		case domain.FlightStatusCancelled:
			stats.CancelledFlights++
		default:
			stats.OnTimeFlights++
		}
	}

	for _, b := range s.bookings.All() {
		if b.Status != domain.BookingStatusCancelled {
			stats.TotalPassengers++
		}
	}

	stats.HandledBaggageItems = len(s.baggage.All())
	stats.LostBaggageItems = len(s.baggage.FindByStatus(domain.BaggageStatusLost))

	for _, a := range s.loyalty.All() {
		switch a.Tier {
		case domain.TierGold:
			stats.LoyaltyGold++
		case domain.TierPlatinum:
			stats.LoyaltyPlatinum++
		}
	}

	s.logger.Debug("statistics computed",
		zap.Int("flights", stats.TotalFlights),
		zap.Int("passengers", stats.TotalPassengers),
		zap.Int("baggage", stats.HandledBaggageItems))
	return &stats, nil
}

var _ StatsUseCase = (*StatsService)(nil)
