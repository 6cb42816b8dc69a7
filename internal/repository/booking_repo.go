package repository

import "github.com/Domenick1991/airport/internal/domain"

type BookingRepository interface {
	Store[domain.Booking]
	FindByPassenger(passengerID string) []domain.Booking
}

type MemoryBookingRepository struct {
	*MemoryStore[domain.Booking]
}

func NewBookingRepository() BookingRepository {
	return &MemoryBookingRepository{MemoryStore: NewMemoryStore[domain.Booking]()}
}

func (r *MemoryBookingRepository) FindByPassenger(passengerID string) []domain.Booking {
	return r.Filter(func(b domain.Booking) bool { return b.PassengerID == passengerID })
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)

type TicketRepository interface {
	Store[domain.Ticket]
}

func NewTicketRepository() TicketRepository {
	return NewMemoryStore[domain.Ticket]()
}

type PaymentRepository interface {
	Store[domain.Payment]
	FindByBooking(bookingID string) []domain.Payment
}

type MemoryPaymentRepository struct {
	*MemoryStore[domain.Payment]
}

func NewPaymentRepository() PaymentRepository {
	return &MemoryPaymentRepository{MemoryStore: NewMemoryStore[domain.Payment]()}
}

func (r *MemoryPaymentRepository) FindByBooking(bookingID string) []domain.Payment {
	return r.Filter(func(p domain.Payment) bool { return p.BookingID == bookingID })
}

var _ PaymentRepository = (*MemoryPaymentRepository)(nil)
