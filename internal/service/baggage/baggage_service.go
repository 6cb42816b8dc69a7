package baggage

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"go.uber.org/zap"
)

type BaggageUseCase interface {
	CheckInBaggage(ctx context.Context, input CheckInInput) (*domain.BaggageItem, error)
	GetBaggage(ctx context.Context, tagID string) (*domain.BaggageItem, error)
	LoadToAircraft(ctx context.Context, tagID, location string) (*domain.BaggageItem, error)
	Unload(ctx context.Context, tagID, location string) (*domain.BaggageItem, error)
	Deliver(ctx context.Context, tagID string) (*domain.BaggageItem, error)
	MarkLost(ctx context.Context, tagID string) (*domain.BaggageItem, error)
	CountByStatus(ctx context.Context, status domain.BaggageStatus) (int, error)
	TotalWeight(ctx context.Context) (float64, error)
	FindByBooking(ctx context.Context, bookingID string) ([]domain.BaggageItem, error)
}

type CheckInInput struct {
	TagID      string            `json:"tag_id"`
	BookingID  string            `json:"booking_id"`
	WeightKG   float64           `json:"weight_kg"`
	Location   string            `json:"location"`
	Priority   bool              `json:"priority"`
	OwnerID    string            `json:"owner_id"`
	Dimensions domain.Dimensions `json:"dimensions"`
}

type BaggageService struct {
	items       repository.BaggageRepository
	maxWeightKG float64
	locks       *repository.Locker
	events      *kafka.Emitter
	logger      *zap.Logger
}

type BaggageServiceOption func(*BaggageService)

func WithLogger(logger *zap.Logger) BaggageServiceOption {
	return func(s *BaggageService) {
		s.logger = logger
	}
}

func WithEmitter(events *kafka.Emitter) BaggageServiceOption {
	return func(s *BaggageService) {
		s.events = events
	}
}

func NewBaggageService(items repository.BaggageRepository, maxWeightKG float64, opts ...BaggageServiceOption) *BaggageService {
	service := &BaggageService{
		items:       items,
		maxWeightKG: maxWeightKG,
		locks:       repository.NewLocker(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CheckInBaggage stores a new CHECKED_IN item. Items heavier than the
// configured limit are rejected and never stored.
func (s *BaggageService) CheckInBaggage(ctx context.Context, input CheckInInput) (*domain.BaggageItem, error) {
	if input.TagID == "" {
		return nil, domain.InvalidArgumentf("tag id is required")
	}
	if input.WeightKG > s.maxWeightKG {
		s.logger.Info("baggage rejected",
			zap.String("tag_id", input.TagID),
			zap.Float64("weight_kg", input.WeightKG),
			zap.Float64("limit_kg", s.maxWeightKG))
		return nil, domain.ErrOverweight
	}

	unlock := s.locks.Lock(input.TagID)
	defer unlock()

	item := domain.NewBaggageItem(input.TagID, input.BookingID, input.WeightKG)
	item.Priority = input.Priority
	item.OwnerID = input.OwnerID
	item.Dimensions = input.Dimensions
	item.CheckIn(input.Location)
	s.items.Add(item.TagID, *item)

	s.logger.Info("baggage checked in",
		zap.String("tag_id", item.TagID),
		zap.String("booking_id", item.BookingID),
		zap.String("location", item.Location))
	s.publish(ctx, "baggage_checked_in", item)
	return item, nil
}

func (s *BaggageService) GetBaggage(ctx context.Context, tagID string) (*domain.BaggageItem, error) {
	item, ok := s.items.Get(tagID)
	if !ok {
		return nil, notFound(tagID)
	}
	return &item, nil
}

func (s *BaggageService) LoadToAircraft(ctx context.Context, tagID, location string) (*domain.BaggageItem, error) {
	return s.update(ctx, tagID, "baggage_loaded", func(b *domain.BaggageItem) { b.MarkLoaded(location) })
}

func (s *BaggageService) Unload(ctx context.Context, tagID, location string) (*domain.BaggageItem, error) {
	return s.update(ctx, tagID, "baggage_unloaded", func(b *domain.BaggageItem) { b.MarkUnloaded(location) })
}

func (s *BaggageService) Deliver(ctx context.Context, tagID string) (*domain.BaggageItem, error) {
	return s.update(ctx, tagID, "baggage_delivered", (*domain.BaggageItem).MarkDelivered)
}

func (s *BaggageService) MarkLost(ctx context.Context, tagID string) (*domain.BaggageItem, error) {
	return s.update(ctx, tagID, "baggage_lost", (*domain.BaggageItem).MarkLost)
}

func (s *BaggageService) CountByStatus(ctx context.Context, status domain.BaggageStatus) (int, error) {
	return len(s.items.FindByStatus(status)), nil
}

func (s *BaggageService) TotalWeight(ctx context.Context) (float64, error) {
	var total float64
	for _, item := range s.items.All() {
		total += item.WeightKG
	}
	return total, nil
}

func (s *BaggageService) FindByBooking(ctx context.Context, bookingID string) ([]domain.BaggageItem, error) {
	return s.items.FindByBooking(bookingID), nil
}

func (s *BaggageService) update(ctx context.Context, tagID, eventType string, apply func(*domain.BaggageItem)) (*domain.BaggageItem, error) {
	unlock := s.locks.Lock(tagID)
	defer unlock()

	item, ok := s.items.Get(tagID)
	if !ok {
		return nil, notFound(tagID)
	}
	apply(&item)
	s.items.Add(tagID, item)

	s.logger.Info("baggage updated",
		zap.String("tag_id", tagID),
		zap.String("status", string(item.Status)),
		zap.String("location", item.Location))
	s.publish(ctx, eventType, &item)
	return &item, nil
}

func (s *BaggageService) publish(ctx context.Context, eventType string, item *domain.BaggageItem) {
	s.events.Emit(ctx, kafka.Event{
		Type:      eventType,
		Aggregate: "baggage",
		ID:        item.TagID,
		Status:    string(item.Status),
		Attributes: map[string]string{
			"booking_id": item.BookingID,
			"location":   item.Location,
		},
		Notify: item.Status == domain.BaggageStatusLost || item.Status == domain.BaggageStatusDelivered,
	})
}

func notFound(tagID string) error {
	return domain.NotFoundf("baggage with tag %s not found", tagID)
}

var _ BaggageUseCase = (*BaggageService)(nil)
