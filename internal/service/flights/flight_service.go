package flights

import (
	"context"
	"sort"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	ScheduleFlight(ctx context.Context, flight domain.Flight) (*domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	UpdateStatus(ctx context.Context, id string, status domain.FlightStatus) (*domain.Flight, error)
	Delay(ctx context.Context, id string, minutes int) (*domain.Flight, error)
	CancelFlight(ctx context.Context, id string) (*domain.Flight, error)
	FindByRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	UpcomingFlights(ctx context.Context, now time.Time) ([]domain.Flight, error)
	FlightsOn(ctx context.Context, day time.Time) ([]domain.Flight, error)
	RemoveFlight(ctx context.Context, id string) error
	RegisterGate(ctx context.Context, gate domain.Gate) (*domain.Gate, error)
	AssignGate(ctx context.Context, flightID, gateID string) (*domain.Flight, error)
	ReserveSeat(ctx context.Context, flightID, seatNumber string) (*domain.Flight, error)
	ReleaseSeat(ctx context.Context, flightID, seatNumber string) (*domain.Flight, error)
}

// FlightCache is the shared cache in front of route lookups. Seat locks hold a
// seat across service instances while it is reserved.
type FlightCache interface {
	GetRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	SetRoute(ctx context.Context, origin, destination string, flights []domain.Flight) error
	InvalidateRoute(ctx context.Context, origin, destination string) error
	AcquireSeatLock(ctx context.Context, flightID, seat string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID, seat string) error
}

type FlightService struct {
	repo    repository.FlightRepository
	gates   repository.GateRepository
	cache   FlightCache
	holdTTL time.Duration
	locks   *repository.Locker
	events  *kafka.Emitter
	logger  *zap.Logger
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache, holdTTL time.Duration) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
		s.holdTTL = holdTTL
	}
}

func WithLogger(logger *zap.Logger) FlightServiceOption {
	return func(s *FlightService) {
		s.logger = logger
	}
}

func WithEmitter(events *kafka.Emitter) FlightServiceOption {
	return func(s *FlightService) {
		s.events = events
	}
}

func NewFlightService(repo repository.FlightRepository, gates repository.GateRepository, opts ...FlightServiceOption) *FlightService {
	service := &FlightService{
		repo:   repo,
		gates:  gates,
		locks:  repository.NewLocker(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *FlightService) ScheduleFlight(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	if flight.ID == "" {
		return nil, domain.InvalidArgumentf("flight id is required")
	}
	if flight.Origin == "" || flight.Destination == "" {
		return nil, domain.InvalidArgumentf("origin and destination are required")
	}
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	if !flight.Status.IsValid() {
		return nil, domain.InvalidArgumentf("unknown flight status %q", flight.Status)
	}

	unlock := s.locks.Lock(flight.ID)
	defer unlock()

	if _, exists := s.repo.Get(flight.ID); exists {
		return nil, domain.AlreadyExistsf("flight %s already exists", flight.ID)
	}
	flight = flight.Clone()
	s.repo.Add(flight.ID, flight)
	s.invalidate(ctx, &flight)

	s.logger.Info("flight scheduled",
		zap.String("flight_id", flight.ID),
		zap.String("origin", flight.Origin),
		zap.String("destination", flight.Destination),
		zap.Time("departure", flight.DepartureTime))
	s.publish(ctx, "flight_scheduled", &flight, false)
	return &flight, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	flight, ok := s.repo.Get(id)
	if !ok {
		return nil, notFound(id)
	}
	return &flight, nil
}

// List returns every flight ordered by departure time.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	flights := s.repo.All()
	sort.Slice(flights, func(i, j int) bool {
		return flights[i].DepartureTime.Before(flights[j].DepartureTime)
	})
	return flights, nil
}

func (s *FlightService) UpdateStatus(ctx context.Context, id string, status domain.FlightStatus) (*domain.Flight, error) {
	if !status.IsValid() {
		return nil, domain.InvalidArgumentf("unknown flight status %q", status)
	}
	return s.mutate(ctx, id, "flight_status_changed", false, func(f *domain.Flight) error {
		return f.SetStatus(status)
	})
}

func (s *FlightService) Delay(ctx context.Context, id string, minutes int) (*domain.Flight, error) {
	return s.mutate(ctx, id, "flight_delayed", true, func(f *domain.Flight) error {
		return f.Delay(minutes)
	})
}

// CancelFlight applies the same departed-flight rule as UpdateStatus.
func (s *FlightService) CancelFlight(ctx context.Context, id string) (*domain.Flight, error) {
	return s.mutate(ctx, id, "flight_cancelled", true, func(f *domain.Flight) error {
		return f.SetStatus(domain.FlightStatusCancelled)
	})
}

// FindByRoute reads through the route cache. Cache failures fall back to the
// repository.
func (s *FlightService) FindByRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetRoute(ctx, origin, destination)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.logger.Warn("route cache read failed",
				zap.String("origin", origin),
				zap.String("destination", destination),
				zap.Error(err))
		}
	}

	flights := s.repo.FindByRoute(origin, destination)
	if s.cache != nil {
		if err := s.cache.SetRoute(ctx, origin, destination, flights); err != nil {
			s.logger.Warn("route cache write failed", zap.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) UpcomingFlights(ctx context.Context, now time.Time) ([]domain.Flight, error) {
	return s.repo.FindActive(now), nil
}

func (s *FlightService) FlightsOn(ctx context.Context, day time.Time) ([]domain.Flight, error) {
	return s.repo.FindOnDay(day), nil
}

// RemoveFlight drops the flight from the schedule and frees its gate.
func (s *FlightService) RemoveFlight(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	flight, ok := s.repo.Get(id)
	if !ok {
		return notFound(id)
	}
	if gateID := flight.GateID; gateID != "" {
		unlockGate := s.locks.Lock(gateKey(gateID))
		if gate, ok := s.gates.Get(gateID); ok && gate.CurrentFlightID == id {
			gate.ClearFlight()
			s.gates.Add(gateID, gate)
		}
		unlockGate()
	}
	s.repo.Remove(id)
	s.invalidate(ctx, &flight)

	s.logger.Info("flight removed", zap.String("flight_id", id))
	s.publish(ctx, "flight_removed", &flight, false)
	return nil
}

func (s *FlightService) RegisterGate(ctx context.Context, gate domain.Gate) (*domain.Gate, error) {
	if gate.ID == "" {
		return nil, domain.InvalidArgumentf("gate id is required")
	}

	unlock := s.locks.Lock(gateKey(gate.ID))
	defer unlock()

	if _, exists := s.gates.Get(gate.ID); exists {
		return nil, domain.AlreadyExistsf("gate %s already exists", gate.ID)
	}
	s.gates.Add(gate.ID, gate)
	return &gate, nil
}

// AssignGate moves the flight to a free gate and frees the gate it held
// before, if any.
func (s *FlightService) AssignGate(ctx context.Context, flightID, gateID string) (*domain.Flight, error) {
	unlockFlight := s.locks.Lock(flightID)
	defer unlockFlight()

	flight, ok := s.repo.Get(flightID)
	if !ok {
		return nil, notFound(flightID)
	}
	if flight.GateID == gateID {
		return &flight, nil
	}

	unlockGate := s.locks.Lock(gateKey(gateID))
	gate, ok := s.gates.Get(gateID)
	if !ok {
		unlockGate()
		return nil, domain.NotFoundf("gate %s not found", gateID)
	}
	if !gate.IsFree() {
		unlockGate()
		return nil, domain.ErrGateOccupied
	}
	gate.AssignFlight(flightID)
	s.gates.Add(gateID, gate)
	unlockGate()

	if previous := flight.GateID; previous != "" {
		unlockPrev := s.locks.Lock(gateKey(previous))
		if old, ok := s.gates.Get(previous); ok && old.CurrentFlightID == flightID {
			old.ClearFlight()
			s.gates.Add(previous, old)
		}
		unlockPrev()
	}

	flight.AssignGate(gate.ID, gate.TerminalCode)
	s.repo.Add(flightID, flight)
	s.invalidate(ctx, &flight)

	s.logger.Info("gate assigned", zap.String("flight_id", flightID), zap.String("gate_id", gateID))
	s.publish(ctx, "flight_gate_assigned", &flight, true)
	return &flight, nil
}

func (s *FlightService) ReserveSeat(ctx context.Context, flightID, seatNumber string) (*domain.Flight, error) {
	unlock := s.locks.Lock(flightID)
	defer unlock()

	flight, ok := s.repo.Get(flightID)
	if !ok {
		return nil, notFound(flightID)
	}
	seat := flight.Aircraft.Seat(seatNumber)
	if seat == nil {
		return nil, domain.NotFoundf("seat %s not found on flight %s", seatNumber, flightID)
	}

	held := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, flightID, seatNumber, s.holdTTL)
		if err != nil {
			s.logger.Error("seat lock failed", zap.String("flight_id", flightID), zap.String("seat", seatNumber), zap.Error(err))
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSeatUnavailable
		}
		held = true
	}

	if err := seat.Reserve(); err != nil {
		if held {
			_ = s.cache.ReleaseSeatLock(ctx, flightID, seatNumber)
		}
		return nil, err
	}
	s.repo.Add(flightID, flight)
	s.invalidate(ctx, &flight)

	s.logger.Info("seat reserved", zap.String("flight_id", flightID), zap.String("seat", seatNumber))
	s.publishSeat(ctx, "seat_reserved", &flight, seatNumber)
	return &flight, nil
}

func (s *FlightService) ReleaseSeat(ctx context.Context, flightID, seatNumber string) (*domain.Flight, error) {
	unlock := s.locks.Lock(flightID)
	defer unlock()

	flight, ok := s.repo.Get(flightID)
	if !ok {
		return nil, notFound(flightID)
	}
	seat := flight.Aircraft.Seat(seatNumber)
	if seat == nil {
		return nil, domain.NotFoundf("seat %s not found on flight %s", seatNumber, flightID)
	}
	seat.Release()
	s.repo.Add(flightID, flight)

	if s.cache != nil {
		if err := s.cache.ReleaseSeatLock(ctx, flightID, seatNumber); err != nil {
			s.logger.Warn("seat lock release failed", zap.String("flight_id", flightID), zap.Error(err))
		}
	}
	s.invalidate(ctx, &flight)

	s.publishSeat(ctx, "seat_released", &flight, seatNumber)
	return &flight, nil
}

func (s *FlightService) mutate(ctx context.Context, id, eventType string, notify bool, apply func(*domain.Flight) error) (*domain.Flight, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	flight, ok := s.repo.Get(id)
	if !ok {
		return nil, notFound(id)
	}
	if err := apply(&flight); err != nil {
		s.logger.Info("flight update rejected",
			zap.String("flight_id", id),
			zap.String("status", string(flight.Status)),
			zap.Error(err))
		return nil, err
	}
	s.repo.Add(id, flight)
	s.invalidate(ctx, &flight)

	s.logger.Info("flight updated", zap.String("flight_id", id), zap.String("status", string(flight.Status)))
	s.publish(ctx, eventType, &flight, notify)
	return &flight, nil
}

func (s *FlightService) invalidate(ctx context.Context, flight *domain.Flight) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRoute(ctx, flight.Origin, flight.Destination); err != nil {
		s.logger.Warn("route cache invalidation failed",
			zap.String("origin", flight.Origin),
			zap.String("destination", flight.Destination),
			zap.Error(err))
	}
}

func (s *FlightService) publish(ctx context.Context, eventType string, flight *domain.Flight, notify bool) {
	s.events.Emit(ctx, kafka.Event{
		Type:      eventType,
		Aggregate: "flight",
		ID:        flight.ID,
		Status:    string(flight.Status),
		Attributes: map[string]string{
			"origin":      flight.Origin,
			"destination": flight.Destination,
			"departure":   flight.DepartureTime.Format(time.RFC3339),
			"gate_id":     flight.GateID,
		},
		Notify: notify,
	})
}

func (s *FlightService) publishSeat(ctx context.Context, eventType string, flight *domain.Flight, seat string) {
	s.events.Emit(ctx, kafka.Event{
		Type:       eventType,
		Aggregate:  "flight",
		ID:         flight.ID,
		Status:     string(flight.Status),
		Attributes: map[string]string{"seat": seat},
	})
}

func gateKey(id string) string {
	return "gate:" + id
}

func notFound(id string) error {
	return domain.NotFoundf("flight %s not found", id)
}

var _ FlightUseCase = (*FlightService)(nil)
