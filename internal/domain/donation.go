package domain

import "time"

// Donation is an immutable fact linking a donor to a recipient orphanage.
// The amount is fixed-point with two decimals, stored as cents.
type Donation struct {
	ID           int64
	DonationTime time.Time
	AmountCents  int64
	UserID       int64
	OrphID       int64

	// Populated on reads that join the donor and recipient.
	DonorUsername string
	RecipientName string
}

// Amount returns the donation amount in currency units.
func (d Donation) Amount() float64 {
	return float64(d.AmountCents) / 100
}
