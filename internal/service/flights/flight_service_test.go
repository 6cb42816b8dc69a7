package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetRoute(ctx context.Context, origin, destination string, flights []domain.Flight) error {
	args := m.Called(ctx, origin, destination, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateRoute(ctx context.Context, origin, destination string) error {
	args := m.Called(ctx, origin, destination)
	return args.Error(0)
}

func (m *MockCache) AcquireSeatLock(ctx context.Context, flightID, seat string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, flightID, seat, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) ReleaseSeatLock(ctx context.Context, flightID, seat string) error {
	args := m.Called(ctx, flightID, seat)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var departure = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func testFlight(id string, dep time.Time) domain.Flight {
	f := domain.Flight{
		ID:            id,
		Origin:        "SVO",
		Destination:   "LED",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(90 * time.Minute),
		Aircraft:      domain.Aircraft{Registration: "RA-73001", Model: "A320", InService: true},
	}
	f.Aircraft.AddSeat(domain.NewSeat("1A", domain.SeatClassBusiness))
	f.Aircraft.AddSeat(domain.NewSeat("12C", domain.SeatClassEconomy))
	return f
}

func newService(t *testing.T, opts ...FlightServiceOption) *FlightService {
	t.Helper()
	s := NewFlightService(repository.NewFlightRepository(), repository.NewGateRepository(), opts...)
	_, err := s.ScheduleFlight(context.Background(), testFlight("F1", departure))
	require.NoError(t, err)
	return s
}

func TestFlightService_ScheduleFlight(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	got, err := s.GetByID(ctx, "F1")
	require.NoError(t, err)
	assert.Equal(t, domain.FlightStatusScheduled, got.Status)

	_, err = s.ScheduleFlight(ctx, testFlight("F1", departure))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = s.ScheduleFlight(ctx, domain.Flight{Origin: "SVO", Destination: "LED"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = s.GetByID(ctx, "F404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.FlightStatus
		to      domain.FlightStatus
		wantErr error
	}{
		{name: "scheduled to boarding", from: domain.FlightStatusScheduled, to: domain.FlightStatusBoarding},
		{name: "self transition", from: domain.FlightStatusBoarding, to: domain.FlightStatusBoarding},
		{name: "cancelled back to scheduled", from: domain.FlightStatusCancelled, to: domain.FlightStatusScheduled},
		{name: "departed to arrived", from: domain.FlightStatusDeparted, to: domain.FlightStatusArrived},
		{name: "departed to delayed", from: domain.FlightStatusDeparted, to: domain.FlightStatusDelayed, wantErr: domain.ErrAlreadyDeparted},
		{name: "departed to departed", from: domain.FlightStatusDeparted, to: domain.FlightStatusDeparted, wantErr: domain.ErrAlreadyDeparted},
		{name: "unknown status", from: domain.FlightStatusScheduled, to: "TELEPORTED", wantErr: domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newService(t)
			_, err := s.UpdateStatus(ctx, "F1", tt.from)
			require.NoError(t, err)

			updated, err := s.UpdateStatus(ctx, "F1", tt.to)
			current, _ := s.GetByID(ctx, "F1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, current.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
			assert.Equal(t, tt.to, current.Status)
		})
	}

	_, err := newService(t).UpdateStatus(context.Background(), "missing", domain.FlightStatusBoarding)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_DelayAndCancel(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	delayed, err := s.Delay(ctx, "F1", 45)
	require.NoError(t, err)
	assert.Equal(t, domain.FlightStatusDelayed, delayed.Status)
	assert.Equal(t, departure.Add(45*time.Minute), delayed.DepartureTime)
	assert.Equal(t, departure.Add(135*time.Minute), delayed.ArrivalTime)

	_, err = s.Delay(ctx, "F1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	cancelled, err := s.CancelFlight(ctx, "F1")
	require.NoError(t, err)
	assert.Equal(t, domain.FlightStatusCancelled, cancelled.Status)

	_, err = s.CancelFlight(ctx, "F2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_ListAndUpcoming(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	_, err := s.ScheduleFlight(ctx, testFlight("F0", departure.Add(-48*time.Hour)))
	require.NoError(t, err)
	_, err = s.ScheduleFlight(ctx, testFlight("F2", departure.Add(24*time.Hour)))
	require.NoError(t, err)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"F0", "F1", "F2"}, []string{all[0].ID, all[1].ID, all[2].ID})

	upcoming, err := s.UpcomingFlights(ctx, departure)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "F1", upcoming[0].ID, "departure equal to now counts as upcoming")
}

func TestFlightService_FindByRoute_CacheHit(t *testing.T) {
	ctx := context.Background()
	cache := &MockCache{}
	cache.On("InvalidateRoute", ctx, "SVO", "LED").Return(nil)
	cached := []domain.Flight{{ID: "CACHED"}}
	cache.On("GetRoute", ctx, "SVO", "LED").Return(cached, nil).Once()

	s := newService(t, WithCache(cache, time.Minute))
	got, err := s.FindByRoute(ctx, "SVO", "LED")
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	cache.AssertNotCalled(t, "SetRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_FindByRoute_CacheMissFillsCache(t *testing.T) {
	ctx := context.Background()
	cache := &MockCache{}
	cache.On("InvalidateRoute", ctx, "SVO", "LED").Return(nil)
	cache.On("GetRoute", ctx, "SVO", "LED").Return(nil, errors.New("redis down")).Once()
	cache.On("SetRoute", ctx, "SVO", "LED", mock.MatchedBy(func(f []domain.Flight) bool {
		return len(f) == 1 && f[0].ID == "F1"
	})).Return(nil).Once()

	s := newService(t, WithCache(cache, time.Minute))
	got, err := s.FindByRoute(ctx, "SVO", "LED")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "F1", got[0].ID)
	cache.AssertExpectations(t)
}

func TestFlightService_MutationsInvalidateRoute(t *testing.T) {
	ctx := context.Background()
	cache := &MockCache{}
	cache.On("InvalidateRoute", ctx, "SVO", "LED").Return(nil)

	s := newService(t, WithCache(cache, time.Minute))
	_, err := s.UpdateStatus(ctx, "F1", domain.FlightStatusBoarding)
	require.NoError(t, err)
	_, err = s.Delay(ctx, "F1", 10)
	require.NoError(t, err)

	cache.AssertNumberOfCalls(t, "InvalidateRoute", 3)
}

func TestFlightService_Seats(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	f, err := s.ReserveSeat(ctx, "F1", "12C")
	require.NoError(t, err)
	assert.False(t, f.Aircraft.Seat("12C").IsAvailable)
	assert.Len(t, f.Aircraft.AvailableSeats(), 1)

	_, err = s.ReserveSeat(ctx, "F1", "12C")
	assert.ErrorIs(t, err, domain.ErrSeatUnavailable)

	_, err = s.ReserveSeat(ctx, "F1", "99Z")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f, err = s.ReleaseSeat(ctx, "F1", "12C")
	require.NoError(t, err)
	assert.True(t, f.Aircraft.Seat("12C").IsAvailable)

	_, err = s.ReserveSeat(ctx, "F1", "12C")
	assert.NoError(t, err)
}

func TestFlightService_SeatHoldHeldElsewhere(t *testing.T) {
	ctx := context.Background()
	cache := &MockCache{}
	cache.On("InvalidateRoute", ctx, "SVO", "LED").Return(nil)
	cache.On("AcquireSeatLock", ctx, "F1", "1A", 5*time.Minute).Return(false, nil).Once()

	s := newService(t, WithCache(cache, 5*time.Minute))
	_, err := s.ReserveSeat(ctx, "F1", "1A")
	assert.ErrorIs(t, err, domain.ErrSeatUnavailable)

	f, err := s.GetByID(ctx, "F1")
	require.NoError(t, err)
	assert.True(t, f.Aircraft.Seat("1A").IsAvailable)
}

func TestFlightService_SeatHoldReleasedWhenSeatTaken(t *testing.T) {
	ctx := context.Background()
	cache := &MockCache{}
	cache.On("InvalidateRoute", ctx, "SVO", "LED").Return(nil)
	cache.On("AcquireSeatLock", ctx, "F1", "1A", time.Minute).Return(true, nil)
	cache.On("ReleaseSeatLock", ctx, "F1", "1A").Return(nil)

	s := NewFlightService(repository.NewFlightRepository(), repository.NewGateRepository(), WithCache(cache, time.Minute))
	flight := testFlight("F1", departure)
	require.NoError(t, flight.Aircraft.Seat("1A").Reserve())
	_, err := s.ScheduleFlight(ctx, flight)
	require.NoError(t, err)

	_, err = s.ReserveSeat(ctx, "F1", "1A")
	assert.ErrorIs(t, err, domain.ErrSeatUnavailable)
	cache.AssertCalled(t, "ReleaseSeatLock", ctx, "F1", "1A")
}

func TestFlightService_AssignGate(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	_, err := s.ScheduleFlight(ctx, testFlight("F2", departure.Add(time.Hour)))
	require.NoError(t, err)

	for _, id := range []string{"A1", "A2"} {
		_, err := s.RegisterGate(ctx, *domain.NewGate(id, "T1"))
		require.NoError(t, err)
	}
	_, err = s.RegisterGate(ctx, *domain.NewGate("A1", "T1"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	f, err := s.AssignGate(ctx, "F1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", f.GateID)
	assert.Equal(t, "T1", f.TerminalCode)

	_, err = s.AssignGate(ctx, "F2", "A1")
	assert.ErrorIs(t, err, domain.ErrGateOccupied)

	_, err = s.AssignGate(ctx, "F1", "A2")
	require.NoError(t, err)

	f2, err := s.AssignGate(ctx, "F2", "A1")
	require.NoError(t, err, "A1 was freed when F1 moved")
	assert.Equal(t, "A1", f2.GateID)

	_, err = s.AssignGate(ctx, "F1", "Z9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_PublishesDelayNotification(t *testing.T) {
	ctx := context.Background()
	producer := &MockProducer{}
	producer.On("Publish", ctx, "events", "F1", mock.Anything).Return(nil)
	producer.On("Publish", ctx, "notify", "F1", mock.MatchedBy(func(e kafka.Event) bool {
		return e.Type == "flight_delayed" && e.Status == string(domain.FlightStatusDelayed)
	})).Return(nil).Once()

	s := newService(t, WithEmitter(kafka.NewEmitter(producer, "events", kafka.WithNotificationsTopic("notify"))))
	_, err := s.Delay(ctx, "F1", 30)
	require.NoError(t, err)

	producer.AssertExpectations(t)
}

func TestFlightService_FlightsOn(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	_, err := s.ScheduleFlight(ctx, testFlight("F2", departure.Add(-2*time.Hour)))
	require.NoError(t, err)
	_, err = s.ScheduleFlight(ctx, testFlight("F3", departure.Add(24*time.Hour)))
	require.NoError(t, err)

	day, err := s.FlightsOn(ctx, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "F2", day[0].ID)
	assert.Equal(t, "F1", day[1].ID)

	empty, err := s.FlightsOn(ctx, time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFlightService_RemoveFlight(t *testing.T) {
	ctx := context.Background()
	cache := &MockCache{}
	cache.On("InvalidateRoute", ctx, "SVO", "LED").Return(nil)

	s := newService(t, WithCache(cache, time.Minute))
	_, err := s.RegisterGate(ctx, *domain.NewGate("A1", "T1"))
	require.NoError(t, err)
	_, err = s.AssignGate(ctx, "F1", "A1")
	require.NoError(t, err)

	require.NoError(t, s.RemoveFlight(ctx, "F1"))

	_, err = s.GetByID(ctx, "F1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.RemoveFlight(ctx, "F1"), domain.ErrNotFound)
	cache.AssertNumberOfCalls(t, "InvalidateRoute", 3)

	_, err = s.ScheduleFlight(ctx, testFlight("F2", departure))
	require.NoError(t, err)
	_, err = s.AssignGate(ctx, "F2", "A1")
	assert.NoError(t, err, "gate freed by removal")
}
