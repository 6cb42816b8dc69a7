package repository

import (
	"sort"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
)

type FlightRepository interface {
	Store[domain.Flight]
	FindActive(now time.Time) []domain.Flight
	FindByRoute(origin, destination string) []domain.Flight
	FindOnDay(day time.Time) []domain.Flight
}

type MemoryFlightRepository struct {
	*MemoryStore[domain.Flight]
}

func NewFlightRepository() FlightRepository {
	return &MemoryFlightRepository{MemoryStore: NewMemoryStore[domain.Flight]()}
}

// FindActive returns flights departing at or after now, earliest first.
func (r *MemoryFlightRepository) FindActive(now time.Time) []domain.Flight {
	flights := r.Filter(func(f domain.Flight) bool { return !f.DepartureTime.Before(now) })
	sortByDeparture(flights)
	return flights
}

func (r *MemoryFlightRepository) FindByRoute(origin, destination string) []domain.Flight {
	flights := r.Filter(func(f domain.Flight) bool {
		return f.Origin == origin && f.Destination == destination
	})
	sortByDeparture(flights)
	return flights
}

// FindOnDay returns flights departing on day's calendar date in day's
// location, earliest first.
func (r *MemoryFlightRepository) FindOnDay(day time.Time) []domain.Flight {
	y, m, d := day.Date()
	flights := r.Filter(func(f domain.Flight) bool {
		fy, fm, fd := f.DepartureTime.In(day.Location()).Date()
		return fy == y && fm == m && fd == d
	})
	sortByDeparture(flights)
	return flights
}

func sortByDeparture(flights []domain.Flight) {
	sort.Slice(flights, func(i, j int) bool {
		return flights[i].DepartureTime.Before(flights[j].DepartureTime)
	})
}

var _ FlightRepository = (*MemoryFlightRepository)(nil)

type GateRepository interface {
	Store[domain.Gate]
}

func NewGateRepository() GateRepository {
	return NewMemoryStore[domain.Gate]()
}
