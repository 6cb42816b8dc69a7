package domain

import "time"

type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "BRONZE"
	TierSilver   LoyaltyTier = "SILVER"
	TierGold     LoyaltyTier = "GOLD"
	TierPlatinum LoyaltyTier = "PLATINUM"
)

const (
	silverThreshold   = 20000
	goldThreshold     = 50000
	platinumThreshold = 100000
)

// TierFor derives the tier from a point balance.
func TierFor(points int64) LoyaltyTier {
	switch {
	case points >= platinumThreshold:
		return TierPlatinum
	case points >= goldThreshold:
		return TierGold
	case points >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

type LoyaltyAccount struct {
	Number          string      `json:"number"`
	Points          int64       `json:"points"`
	Tier            LoyaltyTier `json:"tier"`
	StatusExpiry    *time.Time  `json:"status_expiry,omitempty"`
	AccruedPayments []string    `json:"accrued_payments,omitempty"`
}

func NewLoyaltyAccount(number string) *LoyaltyAccount {
	return &LoyaltyAccount{Number: number, Tier: TierBronze}
}

func (a *LoyaltyAccount) AddPoints(amount int64) error {
	if amount < 0 {
		return ErrNegativePoints
	}
	a.Points += amount
	a.Tier = TierFor(a.Points)
	return nil
}

func (a *LoyaltyAccount) RedeemPoints(amount int64) error {
	if amount < 0 {
		return ErrNegativePoints
	}
	if amount > a.Points {
		return ErrInsufficientPoints
	}
	a.Points -= amount
	a.Tier = TierFor(a.Points)
	return nil
}

// Accrue credits points earned by a payment. Each payment is credited once.
func (a *LoyaltyAccount) Accrue(paymentID string, points int64) error {
	if contains(a.AccruedPayments, paymentID) {
		return AlreadyExistsf("payment %s already credited to %s", paymentID, a.Number)
	}
	if err := a.AddPoints(points); err != nil {
		return err
	}
	a.AccruedPayments = append(a.AccruedPayments, paymentID)
	return nil
}

// Clone returns a copy that shares no slices or pointers with a.
func (a *LoyaltyAccount) Clone() LoyaltyAccount {
	c := *a
	c.AccruedPayments = append([]string(nil), a.AccruedPayments...)
	if a.StatusExpiry != nil {
		expiry := *a.StatusExpiry
		c.StatusExpiry = &expiry
	}
	return c
}

// WillExpireWithin reports whether the status expires no later than days
// from now. Accounts without an expiry never expire.
func (a *LoyaltyAccount) WillExpireWithin(days int, now time.Time) bool {
	if a.StatusExpiry == nil {
		return false
	}
	return !a.StatusExpiry.After(now.AddDate(0, 0, days))
}
