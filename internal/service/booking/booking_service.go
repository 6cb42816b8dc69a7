package booking

import (
	"context"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/idgen"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, id string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
	MarkPaid(ctx context.Context, id, paymentID string) (*domain.Booking, error)
	CheckIn(ctx context.Context, id string) (*domain.Booking, error)
	IssueTicket(ctx context.Context, bookingID string, input IssueTicketInput) (*domain.Ticket, error)
	BookingsForPassenger(ctx context.Context, passengerID string) ([]domain.Booking, error)
}

type BookingService struct {
	bookings repository.BookingRepository
	tickets  repository.TicketRepository
	locks    *repository.Locker
	ids      idgen.Generator
	events   *kafka.Emitter
	logger   *zap.Logger
	now      func() time.Time
}

type CreateBookingInput struct {
	PassengerID string `json:"passenger_id"`
	FlightID    string `json:"flight_id"`
	Refundable  bool   `json:"refundable"`
}

type IssueTicketInput struct {
	SeatNumber string           `json:"seat_number"`
	SeatClass  domain.SeatClass `json:"seat_class"`
	BasePrice  domain.Money     `json:"base_price"`
	FareBasis  string           `json:"fare_basis"`
	Refundable bool             `json:"refundable"`
}

type BookingServiceOption func(*BookingService)

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func WithEmitter(events *kafka.Emitter) BookingServiceOption {
	return func(s *BookingService) {
		s.events = events
	}
}

func WithIDGenerator(ids idgen.Generator) BookingServiceOption {
	return func(s *BookingService) {
		s.ids = ids
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	tickets repository.TicketRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		tickets:  tickets,
		locks:    repository.NewLocker(),
		ids:      idgen.UUID{},
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.PassengerID == "" {
		return nil, domain.InvalidArgumentf("passenger id is required")
	}
	if input.FlightID == "" {
		return nil, domain.InvalidArgumentf("flight id is required")
	}

	booking := domain.NewBooking(s.ids.NextID("BKG"), input.PassengerID, input.FlightID, s.now)
	booking.Refundable = input.Refundable
	s.bookings.Add(booking.ID, *booking)

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("passenger_id", booking.PassengerID),
		zap.String("flight_id", booking.FlightID))
	s.publish(ctx, "booking_created", booking, false)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, ok := s.bookings.Get(id)
	if !ok {
		return nil, notFound(id)
	}
	return &booking, nil
}

func (s *BookingService) ConfirmBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.transition(ctx, id, "booking_confirmed", (*domain.Booking).Confirm)
}

func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.transition(ctx, id, "booking_cancelled", (*domain.Booking).Cancel)
}

func (s *BookingService) MarkPaid(ctx context.Context, id, paymentID string) (*domain.Booking, error) {
	if paymentID == "" {
		return nil, domain.InvalidArgumentf("payment id is required")
	}
	return s.transition(ctx, id, "booking_paid", func(b *domain.Booking) error {
		return b.MarkPaid(paymentID)
	})
}

// CheckIn moves the booking to CHECKED_IN and marks every ticket on it as
// checked in.
func (s *BookingService) CheckIn(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.transition(ctx, id, "booking_checked_in", (*domain.Booking).CheckIn)
	if err != nil {
		return nil, err
	}
	for _, ticketID := range booking.TicketIDs {
		ticket, ok := s.tickets.Get(ticketID)
		if !ok {
			continue
		}
		ticket.MarkCheckedIn()
		s.tickets.Add(ticketID, ticket)
	}
	return booking, nil
}

func (s *BookingService) IssueTicket(ctx context.Context, bookingID string, input IssueTicketInput) (*domain.Ticket, error) {
	if input.SeatNumber == "" {
		return nil, domain.InvalidArgumentf("seat number is required")
	}
	if input.BasePrice.Amount.IsNegative() {
		return nil, domain.InvalidArgumentf("ticket price must not be negative")
	}

	unlock := s.locks.Lock(bookingID)
	defer unlock()

	booking, ok := s.bookings.Get(bookingID)
	if !ok {
		return nil, notFound(bookingID)
	}
	if booking.Status.IsTerminal() {
		return nil, domain.ErrAlreadyFinalized
	}

	ticket := domain.Ticket{
		ID:          s.ids.NextID("TKT"),
		PassengerID: booking.PassengerID,
		FlightID:    booking.FlightID,
		SeatNumber:  input.SeatNumber,
		SeatClass:   input.SeatClass,
		BasePrice:   input.BasePrice,
		FareBasis:   input.FareBasis,
		Refundable:  input.Refundable,
	}
	s.tickets.Add(ticket.ID, ticket)
	booking.AddTicket(ticket.ID)
	s.bookings.Add(booking.ID, booking)

	s.logger.Info("ticket issued",
		zap.String("booking_id", booking.ID),
		zap.String("ticket_id", ticket.ID),
		zap.String("seat", ticket.SeatNumber))
	s.publish(ctx, "ticket_issued", &booking, false)
	return &ticket, nil
}

func (s *BookingService) BookingsForPassenger(ctx context.Context, passengerID string) ([]domain.Booking, error) {
	return s.bookings.FindByPassenger(passengerID), nil
}

// transition applies one state change under the booking's lock and persists
// the result only when the change succeeds.
func (s *BookingService) transition(ctx context.Context, id, eventType string, apply func(*domain.Booking) error) (*domain.Booking, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	booking, ok := s.bookings.Get(id)
	if !ok {
		return nil, notFound(id)
	}
	if err := apply(&booking); err != nil {
		s.logger.Info("booking transition rejected",
			zap.String("booking_id", id),
			zap.String("status", string(booking.Status)),
			zap.String("event", eventType),
			zap.Error(err))
		return nil, err
	}
	s.bookings.Add(id, booking)

	s.logger.Info("booking updated",
		zap.String("booking_id", id),
		zap.String("status", string(booking.Status)))
	s.publish(ctx, eventType, &booking, true)
	return &booking, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, notify bool) {
	s.events.Emit(ctx, kafka.Event{
		Type:      eventType,
		Aggregate: "booking",
		ID:        booking.ID,
		Status:    string(booking.Status),
		Attributes: map[string]string{
			"passenger_id": booking.PassengerID,
			"flight_id":    booking.FlightID,
		},
		Notify: notify,
	})
}

func notFound(id string) error {
	return domain.NotFoundf("booking %s not found", id)
}

var _ BookingUseCase = (*BookingService)(nil)
