package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
)

const createDonationsTable = `
CREATE TABLE IF NOT EXISTS donations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	donation_time DATETIME NOT NULL,
	amount_cents INTEGER NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users(id),
	orph_id INTEGER NOT NULL REFERENCES orphanages(id)
);
CREATE INDEX IF NOT EXISTS idx_donations_orph_id ON donations(orph_id);
`

type DonationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) repository.DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDonationsTable); err != nil {
		return fmt.Errorf("create donations table: %w", err)
	}
	return nil
}

func (r *DonationRepository) Create(ctx context.Context, donation *domain.Donation) (int64, error) {
	if donation.DonationTime.IsZero() {
		donation.DonationTime = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO donations (donation_time, amount_cents, user_id, orph_id)
VALUES (?, ?, ?, ?)`,
		donation.DonationTime,
		donation.AmountCents,
		donation.UserID,
		donation.OrphID,
	)
	if err != nil {
		return 0, mapConstraintErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("donation last insert id: %w", err)
	}
	donation.ID = id
	return id, nil
}

func (r *DonationRepository) ListByOrphanage(ctx context.Context, orphID int64) ([]domain.Donation, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT d.id, d.donation_time, d.amount_cents, d.user_id, d.orph_id, u.username, o.name
FROM donations d
JOIN users u ON u.id = d.user_id
JOIN orphanages o ON o.id = d.orph_id
WHERE d.orph_id = ?
ORDER BY d.donation_time`,
		orphID,
	)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		var donation domain.Donation
		if err := scanDonation(rows, &donation); err != nil {
			return nil, err
		}
		donations = append(donations, donation)
	}
	return donations, rows.Err()
}

func scanDonation(rows *sql.Rows, donation *domain.Donation) error {
	if err := rows.Scan(
		&donation.ID,
		&donation.DonationTime,
		&donation.AmountCents,
		&donation.UserID,
		&donation.OrphID,
		&donation.DonorUsername,
		&donation.RecipientName,
	); err != nil {
		return fmt.Errorf("scan donation: %w", err)
	}
	return nil
}
