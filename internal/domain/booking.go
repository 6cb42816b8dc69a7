package domain

import "time"

type BookingStatus string

const (
	BookingStatusCreated   BookingStatus = "CREATED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCheckedIn BookingStatus = "CHECKED_IN"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// Booking is a passenger's reservation on one flight. Tickets and payments
// are referenced by id and live in their own repositories.
type Booking struct {
	ID          string        `json:"id"`
	PassengerID string        `json:"passenger_id"`
	FlightID    string        `json:"flight_id"`
	Status      BookingStatus `json:"status"`
	TicketIDs   []string      `json:"ticket_ids"`
	PaymentIDs  []string      `json:"payment_ids"`
	Refundable  bool          `json:"refundable"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	now func() time.Time
}

func NewBooking(id, passengerID, flightID string, now func() time.Time) *Booking {
	if now == nil {
		now = utcNow
	}
	ts := now()
	return &Booking{
		ID:          id,
		PassengerID: passengerID,
		FlightID:    flightID,
		Status:      BookingStatusCreated,
		TicketIDs:   []string{},
		PaymentIDs:  []string{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
		now:         now,
	}
}

func (b *Booking) Confirm() error {
	if b.Status != BookingStatusCreated {
		return ErrNotConfirmable
	}
	b.Status = BookingStatusConfirmed
	b.touch()
	return nil
}

func (b *Booking) Cancel() error {
	if b.Status.IsTerminal() {
		return ErrAlreadyFinalized
	}
	b.Status = BookingStatusCancelled
	b.touch()
	return nil
}

// MarkPaid records the payment and completes the booking.
func (b *Booking) MarkPaid(paymentID string) error {
	if b.Status.IsTerminal() {
		return ErrAlreadyPaid
	}
	b.AddPayment(paymentID)
	b.Status = BookingStatusCompleted
	b.touch()
	return nil
}

func (b *Booking) CheckIn() error {
	if b.Status.IsTerminal() {
		return ErrAlreadyFinalized
	}
	b.Status = BookingStatusCheckedIn
	b.touch()
	return nil
}

func (b *Booking) AddTicket(ticketID string) {
	if contains(b.TicketIDs, ticketID) {
		return
	}
	b.TicketIDs = append(b.TicketIDs, ticketID)
	b.touch()
}

func (b *Booking) AddPayment(paymentID string) {
	if contains(b.PaymentIDs, paymentID) {
		return
	}
	b.PaymentIDs = append(b.PaymentIDs, paymentID)
	b.touch()
}

func (b *Booking) IsRefundable() bool {
	return b.Refundable && (b.Status == BookingStatusConfirmed || b.Status == BookingStatusCreated)
}

func (b *Booking) HasPayments() bool {
	return len(b.PaymentIDs) > 0
}

// Clone returns a copy that shares no slices with b.
func (b *Booking) Clone() Booking {
	c := *b
	c.TicketIDs = append([]string{}, b.TicketIDs...)
	c.PaymentIDs = append([]string{}, b.PaymentIDs...)
	return c
}

func (b *Booking) touch() {
	now := b.now
	if now == nil {
		now = utcNow
	}
	ts := now()
	// updated_at must advance even when the clock has not moved.
	if !ts.After(b.UpdatedAt) {
		ts = b.UpdatedAt.Add(time.Nanosecond)
	}
	b.UpdatedAt = ts
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
