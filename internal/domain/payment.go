package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusDeclined  PaymentStatus = "DECLINED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

const ProviderCard = "CARD"

// cardAuthorizationLimit is the exclusive upper bound a card can be charged.
var cardAuthorizationLimit = decimal.NewFromInt(10000)

type Payment struct {
	ID        string            `json:"id"`
	BookingID string            `json:"booking_id"`
	Amount    Money             `json:"amount"`
	Status    PaymentStatus     `json:"status"`
	Provider  string            `json:"provider"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func NewPayment(id, bookingID string, amount Money) *Payment {
	return &Payment{
		ID:        id,
		BookingID: bookingID,
		Amount:    amount,
		Status:    PaymentStatusPending,
		Provider:  ProviderCard,
	}
}

func (p *Payment) MarkCompleted() { p.Status = PaymentStatusCompleted }

func (p *Payment) MarkDeclined() { p.Status = PaymentStatusDeclined }

func (p *Payment) MarkRefunded() error {
	if p.Status != PaymentStatusCompleted {
		return ErrNotRefundable
	}
	p.Status = PaymentStatusRefunded
	return nil
}

func (p *Payment) IsSuccessful() bool { return p.Status == PaymentStatusCompleted }

// AddMetadata writes to a fresh map so copies read from a store never share it.
func (p *Payment) AddMetadata(key, value string) {
	md := make(map[string]string, len(p.Metadata)+1)
	for k, v := range p.Metadata {
		md[k] = v
	}
	md[key] = value
	p.Metadata = md
}

func (p *Payment) Clone() Payment {
	c := *p
	if p.Metadata != nil {
		c.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

// Authorizer approves or rejects a charge, standing in for a payment gateway.
type Authorizer interface {
	Authorize(amount Money) bool
}

type Card struct {
	Number         string `json:"number"`
	Holder         string `json:"holder"`
	Expiration     string `json:"expiration"`
	BillingAddress string `json:"billing_address,omitempty"`
}

func (c Card) Authorize(amount Money) bool {
	n := len(c.Number)
	return amount.LessThan(cardAuthorizationLimit) && (n == 15 || n == 16)
}

func (c Card) Masked() string {
	if len(c.Number) < 4 {
		return strings.Repeat("*", len(c.Number))
	}
	return strings.Repeat("*", len(c.Number)-4) + c.Number[len(c.Number)-4:]
}

var _ Authorizer = Card{}
