package repository

import (
	"context"

	"orphanage-api/internal/domain"
)

// DonationRepository defines persistence operations for donations. Donations
// are append-only; the store's foreign keys guarantee donor and recipient
// exist.
type DonationRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, donation *domain.Donation) (int64, error)
	ListByOrphanage(ctx context.Context, orphID int64) ([]domain.Donation, error)
}
