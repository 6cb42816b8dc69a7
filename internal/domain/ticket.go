package domain

import "github.com/shopspring/decimal"

type Ticket struct {
	ID          string    `json:"id"`
	PassengerID string    `json:"passenger_id"`
	FlightID    string    `json:"flight_id"`
	SeatNumber  string    `json:"seat_number"`
	SeatClass   SeatClass `json:"seat_class"`
	BasePrice   Money     `json:"base_price"`
	CheckedIn   bool      `json:"checked_in"`
	FareBasis   string    `json:"fare_basis,omitempty"`
	Refundable  bool      `json:"refundable"`
}

func (t *Ticket) MarkCheckedIn() { t.CheckedIn = true }

// PriceWithTax returns base * (1 + rate), where rate is a fraction (0.2 for 20%).
func (t *Ticket) PriceWithTax(rate decimal.Decimal) (Money, error) {
	if rate.IsNegative() {
		return Money{}, InvalidArgumentf("tax rate must be non-negative")
	}
	tax := t.BasePrice.Percentage(rate.Mul(hundred))
	return t.BasePrice.Add(tax)
}

func (t *Ticket) IsUpgradeable() bool {
	return t.SeatClass == SeatClassEconomy || t.SeatClass == SeatClassPremiumEconomy
}

func (t *Ticket) CanRefund() bool {
	return t.Refundable && !t.CheckedIn
}
