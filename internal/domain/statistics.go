package domain

import "math"

// Statistics is an operational snapshot of the airport. Rates are computed on
// demand and are zero while their denominator is zero.
type Statistics struct {
	TotalFlights        int `json:"total_flights"`
	OnTimeFlights       int `json:"on_time_flights"`
	DelayedFlights      int `json:"delayed_flights"`
	CancelledFlights    int `json:"cancelled_flights"`
	TotalPassengers     int `json:"total_passengers"`
	HandledBaggageItems int `json:"handled_baggage_items"`
	LostBaggageItems    int `json:"lost_baggage_items"`
	LoyaltyGold         int `json:"loyalty_gold"`
	LoyaltyPlatinum     int `json:"loyalty_platinum"`
}

// OnTimePercent is on-time flights over all flights, in percent, to 2 places.
func (s Statistics) OnTimePercent() float64 {
	if s.TotalFlights == 0 {
		return 0
	}
	return roundTo(float64(s.OnTimeFlights)/float64(s.TotalFlights)*100, 2)
}

// BaggageLossRate is lost over handled items, in percent, to 3 places.
func (s Statistics) BaggageLossRate() float64 {
	if s.HandledBaggageItems == 0 {
		return 0
	}
	return roundTo(float64(s.LostBaggageItems)/float64(s.HandledBaggageItems)*100, 3)
}

func (s Statistics) AveragePassengersPerFlight() float64 {
	if s.TotalFlights == 0 {
		return 0
	}
	return roundTo(float64(s.TotalPassengers)/float64(s.TotalFlights), 2)
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
