package domain

import "math"

type BaggageStatus string

const (
	BaggageStatusCreated   BaggageStatus = "CREATED"
	BaggageStatusCheckedIn BaggageStatus = "CHECKED_IN"
	BaggageStatusLoaded    BaggageStatus = "LOADED"
	BaggageStatusUnloaded  BaggageStatus = "UNLOADED"
	BaggageStatusLost      BaggageStatus = "LOST"
	BaggageStatusDelivered BaggageStatus = "DELIVERED"
)

type Dimensions struct {
	LengthCM int `json:"length_cm"`
	WidthCM  int `json:"width_cm"`
	HeightCM int `json:"height_cm"`
}

type BaggageItem struct {
	TagID      string        `json:"tag_id"`
	BookingID  string        `json:"booking_id"`
	Priority   bool          `json:"priority"`
	WeightKG   float64       `json:"weight_kg"`
	Status     BaggageStatus `json:"status"`
	Location   string        `json:"location,omitempty"`
	Dimensions Dimensions    `json:"dimensions"`
	OwnerID    string        `json:"owner_id,omitempty"`
}

func NewBaggageItem(tagID, bookingID string, weightKG float64) *BaggageItem {
	return &BaggageItem{
		TagID:     tagID,
		BookingID: bookingID,
		WeightKG:  weightKG,
		Status:    BaggageStatusCreated,
	}
}

func (b *BaggageItem) CheckIn(location string) {
	b.Status = BaggageStatusCheckedIn
	b.Location = location
}

func (b *BaggageItem) MarkLoaded(location string) {
	b.Status = BaggageStatusLoaded
	b.Location = location
}

func (b *BaggageItem) MarkUnloaded(location string) {
	b.Status = BaggageStatusUnloaded
	b.Location = location
}

func (b *BaggageItem) MarkDelivered() {
	b.Status = BaggageStatusDelivered
}

func (b *BaggageItem) MarkLost() {
	b.Status = BaggageStatusLost
	b.Location = ""
}

func (b *BaggageItem) VolumeLiters() float64 {
	d := b.Dimensions
	liters := float64(d.LengthCM*d.WidthCM*d.HeightCM) / 1000.0
	return math.Round(liters*100) / 100
}

func (b *BaggageItem) IsOversized(maxSumCM int) bool {
	d := b.Dimensions
	return d.LengthCM+d.WidthCM+d.HeightCM > maxSumCM
}
