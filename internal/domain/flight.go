package domain

import (
	"math"
	"time"
)

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusBoarding  FlightStatus = "BOARDING"
	FlightStatusDeparted  FlightStatus = "DEPARTED"
	FlightStatusArrived   FlightStatus = "ARRIVED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
	FlightStatusDelayed   FlightStatus = "DELAYED"
)

func (s FlightStatus) IsValid() bool {
	switch s {
	case FlightStatusScheduled, FlightStatusBoarding, FlightStatusDeparted,
		FlightStatusArrived, FlightStatusCancelled, FlightStatusDelayed:
		return true
	}
	return false
}

type Flight struct {
	ID            string       `json:"id"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	DepartureTime time.Time    `json:"departure_time"`
	ArrivalTime   time.Time    `json:"arrival_time"`
	Status        FlightStatus `json:"status"`
	GateID        string       `json:"gate_id,omitempty"`
	TerminalCode  string       `json:"terminal_code,omitempty"`
	DistanceKM    int          `json:"distance_km"`
	Aircraft      Aircraft     `json:"aircraft"`
}

// SetStatus overwrites the status. A departed flight may only arrive.
func (f *Flight) SetStatus(status FlightStatus) error {
	if f.Status == FlightStatusDeparted && status != FlightStatusArrived {
		return ErrAlreadyDeparted
	}
	f.Status = status
	return nil
}

// Delay shifts departure and arrival by the same amount regardless of the
// current status.
func (f *Flight) Delay(minutes int) error {
	if minutes <= 0 {
		return InvalidArgumentf("delay minutes must be positive")
	}
	delta := time.Duration(minutes) * time.Minute
	f.DepartureTime = f.DepartureTime.Add(delta)
	f.ArrivalTime = f.ArrivalTime.Add(delta)
	f.Status = FlightStatusDelayed
	return nil
}

func (f *Flight) AssignGate(gateID, terminalCode string) {
	f.GateID = gateID
	f.TerminalCode = terminalCode
}

func (f *Flight) DurationHours() float64 {
	hours := f.ArrivalTime.Sub(f.DepartureTime).Hours()
	return math.Round(hours*100) / 100
}

func (f *Flight) Clone() Flight {
	c := *f
	c.Aircraft.Seats = append([]Seat(nil), f.Aircraft.Seats...)
	return c
}
