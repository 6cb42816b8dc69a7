package loyalty

import (
	"context"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type LoyaltyUseCase interface {
	Enroll(ctx context.Context, number string) (*domain.LoyaltyAccount, error)
	Get(ctx context.Context, number string) (*domain.LoyaltyAccount, error)
	AddPoints(ctx context.Context, number string, points int64) (*domain.LoyaltyAccount, error)
	RedeemPoints(ctx context.Context, number string, points int64) (*domain.LoyaltyAccount, error)
	AccrueForPayment(ctx context.Context, number string, payment domain.Payment) (*domain.LoyaltyAccount, error)
	SetStatusExpiry(ctx context.Context, number string, expiry time.Time) (*domain.LoyaltyAccount, error)
	ExpiringWithin(ctx context.Context, days int) ([]domain.LoyaltyAccount, error)
}

var errPaymentNotCompleted = &domain.Error{Kind: domain.KindStateConflict, Message: "only completed payments earn points"}

type LoyaltyService struct {
	accounts repository.LoyaltyRepository
	locks    *repository.Locker
	events   *kafka.Emitter
	logger   *zap.Logger
	now      func() time.Time
}

type LoyaltyServiceOption func(*LoyaltyService)

func WithLogger(logger *zap.Logger) LoyaltyServiceOption {
	return func(s *LoyaltyService) {
		s.logger = logger
	}
}

func WithEmitter(events *kafka.Emitter) LoyaltyServiceOption {
	return func(s *LoyaltyService) {
		s.events = events
	}
}

func WithClock(now func() time.Time) LoyaltyServiceOption {
	return func(s *LoyaltyService) {
		s.now = now
	}
}

func NewLoyaltyService(accounts repository.LoyaltyRepository, opts ...LoyaltyServiceOption) *LoyaltyService {
	service := &LoyaltyService{
		accounts: accounts,
		locks:    repository.NewLocker(),
		logger:   zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *LoyaltyService) Enroll(ctx context.Context, number string) (*domain.LoyaltyAccount, error) {
	if number == "" {
		return nil, domain.InvalidArgumentf("loyalty number is required")
	}

	unlock := s.locks.Lock(number)
	defer unlock()

	if _, exists := s.accounts.Get(number); exists {
		return nil, domain.AlreadyExistsf("loyalty account %s already exists", number)
	}
	account := domain.NewLoyaltyAccount(number)
	s.accounts.Add(number, *account)

	s.logger.Info("loyalty account enrolled", zap.String("number", number))
	return account, nil
}

func (s *LoyaltyService) Get(ctx context.Context, number string) (*domain.LoyaltyAccount, error) {
	account, ok := s.accounts.Get(number)
	if !ok {
		return nil, notFound(number)
	}
	return &account, nil
}

func (s *LoyaltyService) AddPoints(ctx context.Context, number string, points int64) (*domain.LoyaltyAccount, error) {
	return s.update(ctx, number, func(a *domain.LoyaltyAccount) error { return a.AddPoints(points) })
}

func (s *LoyaltyService) RedeemPoints(ctx context.Context, number string, points int64) (*domain.LoyaltyAccount, error) {
	return s.update(ctx, number, func(a *domain.LoyaltyAccount) error { return a.RedeemPoints(points) })
}

// AccrueForPayment credits one point per whole currency unit of a completed
// payment. A payment already credited to the account fails AlreadyExists.
func (s *LoyaltyService) AccrueForPayment(ctx context.Context, number string, payment domain.Payment) (*domain.LoyaltyAccount, error) {
	if !payment.IsSuccessful() {
		return nil, errPaymentNotCompleted
	}
	points := payment.Amount.Amount.Floor().IntPart()
	return s.update(ctx, number, func(a *domain.LoyaltyAccount) error { return a.Accrue(payment.ID, points) })
}

func (s *LoyaltyService) SetStatusExpiry(ctx context.Context, number string, expiry time.Time) (*domain.LoyaltyAccount, error) {
	return s.update(ctx, number, func(a *domain.LoyaltyAccount) error {
		a.StatusExpiry = &expiry
		return nil
	})
}

// ExpiringWithin lists accounts whose status lapses within days from now.
func (s *LoyaltyService) ExpiringWithin(ctx context.Context, days int) ([]domain.LoyaltyAccount, error) {
	if days < 0 {
		return nil, domain.InvalidArgumentf("days must not be negative")
	}
	now := s.now()
	var expiring []domain.LoyaltyAccount
	for _, account := range s.accounts.All() {
		if account.WillExpireWithin(days, now) {
			expiring = append(expiring, account)
		}
	}
	return expiring, nil
}

func (s *LoyaltyService) update(ctx context.Context, number string, apply func(*domain.LoyaltyAccount) error) (*domain.LoyaltyAccount, error) {
	unlock := s.locks.Lock(number)
	defer unlock()

	account, ok := s.accounts.Get(number)
	if !ok {
		return nil, notFound(number)
	}
	previous := account.Tier
	if err := apply(&account); err != nil {
		return nil, err
	}
	s.accounts.Add(number, account)

	if account.Tier != previous {
		s.logger.Info("loyalty tier changed",
			zap.String("number", number),
			zap.String("from", string(previous)),
			zap.String("to", string(account.Tier)),
			zap.Int64("points", account.Points))
		s.events.Emit(ctx, kafka.Event{
			Type:       "loyalty_tier_changed",
			Aggregate:  "loyalty",
			ID:         number,
			Status:     string(account.Tier),
			Attributes: map[string]string{"previous_tier": string(previous)},
			Notify:     true,
		})
	}
	return &account, nil
}

func notFound(number string) error {
	return domain.NotFoundf("loyalty account %s not found", number)
}

var _ LoyaltyUseCase = (*LoyaltyService)(nil)
