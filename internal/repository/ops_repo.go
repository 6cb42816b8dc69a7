package repository

import "github.com/Domenick1991/airport/internal/domain"

type BaggageRepository interface {
	Store[domain.BaggageItem]
	FindByBooking(bookingID string) []domain.BaggageItem
	FindByStatus(status domain.BaggageStatus) []domain.BaggageItem
}

type MemoryBaggageRepository struct {
	*MemoryStore[domain.BaggageItem]
}

func NewBaggageRepository() BaggageRepository {
	return &MemoryBaggageRepository{MemoryStore: NewMemoryStore[domain.BaggageItem]()}
}

func (r *MemoryBaggageRepository) FindByBooking(bookingID string) []domain.BaggageItem {
	return r.Filter(func(b domain.BaggageItem) bool { return b.BookingID == bookingID })
}

func (r *MemoryBaggageRepository) FindByStatus(status domain.BaggageStatus) []domain.BaggageItem {
	return r.Filter(func(b domain.BaggageItem) bool { return b.Status == status })
}

var _ BaggageRepository = (*MemoryBaggageRepository)(nil)

type LoyaltyRepository interface {
	Store[domain.LoyaltyAccount]
}

func NewLoyaltyRepository() LoyaltyRepository {
	return NewMemoryStore[domain.LoyaltyAccount]()
}

type BadgeRepository interface {
	Store[domain.AccessBadge]
}

func NewBadgeRepository() BadgeRepository {
	return NewMemoryStore[domain.AccessBadge]()
}
