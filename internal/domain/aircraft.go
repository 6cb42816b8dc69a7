package domain

type SeatClass string

const (
	SeatClassEconomy        SeatClass = "ECONOMY"
	SeatClassPremiumEconomy SeatClass = "PREMIUM_ECONOMY"
	SeatClassBusiness       SeatClass = "BUSINESS"
	SeatClassFirst          SeatClass = "FIRST"
)

const longHaulRangeKM = 6000

type Seat struct {
	Number      string    `json:"number"`
	Class       SeatClass `json:"class"`
	IsAvailable bool      `json:"is_available"`
	IsExitRow   bool      `json:"is_exit_row"`
}

func NewSeat(number string, class SeatClass) Seat {
	return Seat{Number: number, Class: class, IsAvailable: true}
}

func (s *Seat) Reserve() error {
	if !s.IsAvailable {
		return ErrSeatUnavailable
	}
	s.IsAvailable = false
	return nil
}

func (s *Seat) Release() { s.IsAvailable = true }

func (s Seat) IsPremium() bool {
	return s.Class == SeatClassBusiness || s.Class == SeatClassFirst
}

type Aircraft struct {
	Registration string `json:"registration"`
	Model        string `json:"model"`
	Seats        []Seat `json:"seats"`
	FlightHours  int    `json:"flight_hours"`
	Manufacturer string `json:"manufacturer,omitempty"`
	RangeKM      int    `json:"range_km"`
	InService    bool   `json:"in_service"`
}

func (a *Aircraft) AddSeat(seat Seat) {
	a.Seats = append(a.Seats, seat)
}

// Seat returns a pointer into the seat map, or nil when the number is unknown.
func (a *Aircraft) Seat(number string) *Seat {
	for i := range a.Seats {
		if a.Seats[i].Number == number {
			return &a.Seats[i]
		}
	}
	return nil
}

func (a *Aircraft) AvailableSeats() []Seat {
	available := make([]Seat, 0, len(a.Seats))
	for _, s := range a.Seats {
		if s.IsAvailable {
			available = append(available, s)
		}
	}
	return available
}

func (a *Aircraft) AddFlightHours(hours int) error {
	if hours <= 0 {
		return InvalidArgumentf("hours must be positive")
	}
	a.FlightHours += hours
	return nil
}

func (a *Aircraft) Retire() { a.InService = false }

func (a *Aircraft) IsLongHaul() bool { return a.RangeKM >= longHaulRangeKM }
