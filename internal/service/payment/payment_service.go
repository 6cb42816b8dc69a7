package payment

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/idgen"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type PaymentUseCase interface {
	ChargeCard(ctx context.Context, bookingID string, amount domain.Money, card domain.Authorizer) (*domain.Payment, error)
	RefundPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	SplitPayment(ctx context.Context, bookingID string, total domain.Money, parts int, card domain.Authorizer) ([]domain.Payment, error)
	TransferBetweenCards(ctx context.Context, from, to domain.Authorizer, amount domain.Money) error
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	PaymentsForBooking(ctx context.Context, bookingID string) ([]domain.Payment, error)
}

type PaymentService struct {
	payments repository.PaymentRepository
	currency string
	locks    *repository.Locker
	ids      idgen.Generator
	events   *kafka.Emitter
	logger   *zap.Logger
}

type PaymentServiceOption func(*PaymentService)

func WithLogger(logger *zap.Logger) PaymentServiceOption {
	return func(s *PaymentService) {
		s.logger = logger
	}
}

func WithEmitter(events *kafka.Emitter) PaymentServiceOption {
	return func(s *PaymentService) {
		s.events = events
	}
}

func WithIDGenerator(ids idgen.Generator) PaymentServiceOption {
	return func(s *PaymentService) {
		s.ids = ids
	}
}

// NewPaymentService accepts charges in currency only.
func NewPaymentService(payments repository.PaymentRepository, currency string, opts ...PaymentServiceOption) *PaymentService {
	service := &PaymentService{
		payments: payments,
		currency: currency,
		locks:    repository.NewLocker(),
		ids:      idgen.UUID{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *PaymentService) Currency() string {
	return s.currency
}

// ChargeCard authorizes amount against card. A declined charge is still
// persisted; the DECLINED payment is returned together with
// domain.ErrPaymentDeclined.
func (s *PaymentService) ChargeCard(ctx context.Context, bookingID string, amount domain.Money, card domain.Authorizer) (*domain.Payment, error) {
	if amount.Currency != s.currency {
		return nil, domain.ErrCurrencyMismatch
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInsufficientFunds
	}

	payment := domain.NewPayment(s.ids.NextID("PAY"), bookingID, amount)
	if masked, ok := card.(interface{ Masked() string }); ok {
		payment.AddMetadata("card", masked.Masked())
	}

	if !card.Authorize(amount) {
		payment.MarkDeclined()
		s.payments.Add(payment.ID, *payment)
		s.logger.Warn("card declined",
			zap.String("payment_id", payment.ID),
			zap.String("booking_id", bookingID),
			zap.String("amount", amount.String()))
		s.publish(ctx, "payment_declined", payment)
		return payment, domain.ErrPaymentDeclined
	}

	payment.MarkCompleted()
	s.payments.Add(payment.ID, *payment)
	s.logger.Info("card charged",
		zap.String("payment_id", payment.ID),
		zap.String("booking_id", bookingID),
		zap.String("amount", amount.String()))
	s.publish(ctx, "payment_completed", payment)
	return payment, nil
}

func (s *PaymentService) RefundPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	unlock := s.locks.Lock(paymentID)
	defer unlock()

	payment, ok := s.payments.Get(paymentID)
	if !ok {
		return nil, notFound(paymentID)
	}
	if err := payment.MarkRefunded(); err != nil {
		return nil, err
	}
	s.payments.Add(paymentID, payment)

	s.logger.Info("payment refunded", zap.String("payment_id", paymentID))
	s.publish(ctx, "payment_refunded", &payment)
	return &payment, nil
}

// SplitPayment charges total in parts equal shares one after another.
// Shares charged before a failure stay committed and are returned alongside
// the error.
func (s *PaymentService) SplitPayment(ctx context.Context, bookingID string, total domain.Money, parts int, card domain.Authorizer) ([]domain.Payment, error) {
	shares, err := total.Split(parts)
	if err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, parts)
	for i, share := range shares {
		payment, err := s.ChargeCard(ctx, bookingID, share, card)
		if err != nil {
			s.logger.Warn("split payment interrupted",
				zap.String("booking_id", bookingID),
				zap.Int("charged", i),
				zap.Int("parts", parts),
				zap.Error(err))
			return payments, err
		}
		payments = append(payments, *payment)
	}
	return payments, nil
}

// TransferBetweenCards only authorizes the debit on from; crediting to is
// assumed to succeed.
func (s *PaymentService) TransferBetweenCards(ctx context.Context, from, to domain.Authorizer, amount domain.Money) error {
	if amount.Currency != s.currency {
		return domain.ErrCurrencyMismatch
	}
	if !from.Authorize(amount) {
		s.logger.Warn("transfer source declined", zap.String("amount", amount.String()))
		return domain.ErrPaymentDeclined
	}
	s.logger.Info("transfer completed", zap.String("amount", amount.String()))
	return nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	payment, ok := s.payments.Get(id)
	if !ok {
		return nil, notFound(id)
	}
	return &payment, nil
}

func (s *PaymentService) PaymentsForBooking(ctx context.Context, bookingID string) ([]domain.Payment, error) {
	return s.payments.FindByBooking(bookingID), nil
}

func (s *PaymentService) publish(ctx context.Context, eventType string, payment *domain.Payment) {
	s.events.Emit(ctx, kafka.Event{
		Type:      eventType,
		Aggregate: "payment",
		ID:        payment.ID,
		Status:    string(payment.Status),
		Attributes: map[string]string{
			"booking_id": payment.BookingID,
			"amount":     payment.Amount.String(),
		},
		Notify: payment.Status != domain.PaymentStatusCompleted,
	})
}

func notFound(id string) error {
	return domain.NotFoundf("payment %s not found", id)
}

var _ PaymentUseCase = (*PaymentService)(nil)
