package payment

import (
	"context"
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/idgen"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(amount domain.Money) bool {
	args := m.Called(amount)
	return args.Bool(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var validCard = domain.Card{Number: "4111111111111111", Holder: "Jane Doe", Expiration: "12/29"}

func usd(t *testing.T, amount string) domain.Money {
	t.Helper()
	m, err := domain.MoneyFromString(amount, "USD")
	require.NoError(t, err)
	return m
}

func newService() (*PaymentService, repository.PaymentRepository) {
	payments := repository.NewPaymentRepository()
	return NewPaymentService(payments, "USD", WithIDGenerator(idgen.NewSequence())), payments
}

func TestPaymentService_ChargeCard(t *testing.T) {
	tests := []struct {
		name       string
		amount     domain.Money
		card       domain.Card
		wantErr    error
		wantKind   domain.Kind
		wantStatus domain.PaymentStatus
		persisted  bool
	}{
		{name: "authorized", amount: domain.MoneyFromInt(500, "USD"), card: validCard, wantStatus: domain.PaymentStatusCompleted, persisted: true},
		{name: "amex length", amount: domain.MoneyFromInt(500, "USD"), card: domain.Card{Number: "378282246310005"}, wantStatus: domain.PaymentStatusCompleted, persisted: true},
		{name: "over limit", amount: domain.MoneyFromInt(15000, "USD"), card: validCard, wantErr: domain.ErrPaymentDeclined, wantKind: domain.KindAuthorizationFailed, wantStatus: domain.PaymentStatusDeclined, persisted: true},
		{name: "limit is exclusive", amount: domain.MoneyFromInt(10000, "USD"), card: validCard, wantErr: domain.ErrPaymentDeclined, wantKind: domain.KindAuthorizationFailed, wantStatus: domain.PaymentStatusDeclined, persisted: true},
		{name: "short card", amount: domain.MoneyFromInt(10, "USD"), card: domain.Card{Number: "4111"}, wantErr: domain.ErrPaymentDeclined, wantKind: domain.KindAuthorizationFailed, wantStatus: domain.PaymentStatusDeclined, persisted: true},
		{name: "wrong currency", amount: domain.MoneyFromInt(10, "EUR"), card: validCard, wantErr: domain.ErrCurrencyMismatch, wantKind: domain.KindCurrencyMismatch},
		{name: "zero amount", amount: domain.MoneyFromInt(0, "USD"), card: validCard, wantErr: domain.ErrInsufficientFunds, wantKind: domain.KindInvalidArgument},
		{name: "negative amount", amount: domain.MoneyFromInt(-5, "USD"), card: validCard, wantErr: domain.ErrInsufficientFunds, wantKind: domain.KindInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, payments := newService()
			payment, err := service.ChargeCard(context.Background(), "BKG1", tt.amount, tt.card)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
			} else {
				require.NoError(t, err)
			}

			if !tt.persisted {
				assert.Nil(t, payment)
				assert.Empty(t, payments.All())
				return
			}
			require.NotNil(t, payment)
			assert.Equal(t, tt.wantStatus, payment.Status)
			stored, ok := payments.Get(payment.ID)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, stored.Status)
			assert.Equal(t, "BKG1", stored.BookingID)
		})
	}
}

func TestPaymentService_ChargeCardMasksCardNumber(t *testing.T) {
	service, _ := newService()
	payment, err := service.ChargeCard(context.Background(), "BKG1", usd(t, "99.99"), validCard)
	require.NoError(t, err)
	assert.Equal(t, "************1111", payment.Metadata["card"])
}

func TestPaymentService_RefundPayment(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	completed, err := service.ChargeCard(ctx, "BKG1", usd(t, "100"), validCard)
	require.NoError(t, err)

	refunded, err := service.RefundPayment(ctx, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, refunded.Status)

	_, err = service.RefundPayment(ctx, completed.ID)
	assert.ErrorIs(t, err, domain.ErrNotRefundable)
	assert.Equal(t, domain.KindAuthorizationFailed, domain.KindOf(err))

	declined, err := service.ChargeCard(ctx, "BKG1", usd(t, "20000"), validCard)
	require.ErrorIs(t, err, domain.ErrPaymentDeclined)
	_, err = service.RefundPayment(ctx, declined.ID)
	assert.ErrorIs(t, err, domain.ErrNotRefundable)

	_, err = service.RefundPayment(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentService_SplitPayment(t *testing.T) {
	ctx := context.Background()
	service, payments := newService()

	got, err := service.SplitPayment(ctx, "BKG1", usd(t, "100"), 3, validCard)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, p := range got {
		assert.True(t, p.Amount.Amount.Equal(usd(t, "33.33").Amount))
		assert.Equal(t, domain.PaymentStatusCompleted, p.Status)
	}
	assert.Len(t, payments.FindByBooking("BKG1"), 3)

	_, err = service.SplitPayment(ctx, "BKG1", usd(t, "100"), 0, validCard)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestPaymentService_SplitPaymentKeepsEarlierCharges(t *testing.T) {
	ctx := context.Background()
	service, payments := newService()

	card := &MockAuthorizer{}
	card.On("Authorize", mock.Anything).Return(true).Twice()
	card.On("Authorize", mock.Anything).Return(false).Once()

	got, err := service.SplitPayment(ctx, "BKG7", usd(t, "90"), 4, card)
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
	assert.Len(t, got, 2)

	stored := payments.FindByBooking("BKG7")
	assert.Len(t, stored, 3, "two completed shares and the declined one")
	card.AssertNumberOfCalls(t, "Authorize", 3)
}

func TestPaymentService_TransferBetweenCards(t *testing.T) {
	ctx := context.Background()
	service, payments := newService()

	dest := &MockAuthorizer{}

	assert.NoError(t, service.TransferBetweenCards(ctx, validCard, dest, usd(t, "250")))
	assert.ErrorIs(t, service.TransferBetweenCards(ctx, validCard, dest, usd(t, "25000")), domain.ErrPaymentDeclined)
	assert.ErrorIs(t, service.TransferBetweenCards(ctx, validCard, dest, domain.MoneyFromInt(1, "GBP")), domain.ErrCurrencyMismatch)

	dest.AssertNotCalled(t, "Authorize", mock.Anything)
	assert.Empty(t, payments.All())
}

func TestPaymentService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	producer := &MockProducer{}
	producer.On("Publish", ctx, "events", "PAY1", mock.MatchedBy(func(e kafka.Event) bool {
		return e.Type == "payment_completed" && e.Attributes["booking_id"] == "BKG1"
	})).Return(nil).Once()
	producer.On("Publish", ctx, "events", "PAY2", mock.MatchedBy(func(e kafka.Event) bool {
		return e.Type == "payment_declined"
	})).Return(nil).Once()
	producer.On("Publish", ctx, "notify", "PAY2", mock.Anything).Return(nil).Once()

	service := NewPaymentService(repository.NewPaymentRepository(), "USD",
		WithIDGenerator(idgen.NewSequence()),
		WithEmitter(kafka.NewEmitter(producer, "events", kafka.WithNotificationsTopic("notify"))))

	_, err := service.ChargeCard(ctx, "BKG1", usd(t, "10"), validCard)
	require.NoError(t, err)
	_, err = service.ChargeCard(ctx, "BKG1", usd(t, "10000.01"), validCard)
	require.Error(t, err)

	producer.AssertExpectations(t)
}

func TestPaymentService_GetAndList(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	p, err := service.ChargeCard(ctx, "BKG1", usd(t, "10"), validCard)
	require.NoError(t, err)

	got, err := service.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = service.GetPayment(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := service.PaymentsForBooking(ctx, "BKG1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "USD", service.Currency())
}
