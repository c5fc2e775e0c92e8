package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
)

const createOrphanagesTable = `
CREATE TABLE IF NOT EXISTS orphanages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	students INTEGER NOT NULL DEFAULT 0,
	phone_no TEXT NOT NULL DEFAULT '',
	location TEXT,
	activities TEXT NOT NULL DEFAULT '',
	paypal_info TEXT,
	social_media_links TEXT,
	story TEXT NOT NULL DEFAULT '',
	money_uses TEXT NOT NULL DEFAULT '',
	photos_links TEXT,
	bank_info TEXT NOT NULL DEFAULT '',
	act_id TEXT NOT NULL DEFAULT '',
	act_type TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL DEFAULT '',
	good_work TEXT NOT NULL DEFAULT '',
	monthly_donation TEXT NOT NULL DEFAULT '',
	registration_certificate TEXT NOT NULL DEFAULT '',
	blog_link TEXT NOT NULL DEFAULT ''
);
`

type OrphanageRepository struct {
	db *sql.DB
}

func NewOrphanageRepository(db *sql.DB) repository.OrphanageRepository {
	return &OrphanageRepository{db: db}
}

func (r *OrphanageRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createOrphanagesTable); err != nil {
		return fmt.Errorf("create orphanages table: %w", err)
	}
	return nil
}

func (r *OrphanageRepository) Create(ctx context.Context, orph *domain.Orphanage) (int64, error) {
	err := runInTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkOrphanageUnique(ctx, tx, orph.Name, orph.Email, 0); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
INSERT INTO orphanages (
	name, email, students, phone_no, location, activities, paypal_info,
	social_media_links, story, money_uses, photos_links, bank_info, act_id,
	act_type, country, good_work, monthly_donation, registration_certificate, blog_link
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			orphanageArgs(orph)...,
		)
		if err != nil {
			return mapConstraintErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("orphanage last insert id: %w", err)
		}
		orph.ID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orph.ID, nil
}

const selectOrphanage = `
SELECT id, name, email, students, phone_no, location, activities, paypal_info,
	social_media_links, story, money_uses, photos_links, bank_info, act_id,
	act_type, country, good_work, monthly_donation, registration_certificate, blog_link
FROM orphanages
`

func (r *OrphanageRepository) GetByID(ctx context.Context, id int64) (*domain.Orphanage, error) {
	return scanOrphanage(r.db.QueryRowContext(ctx, selectOrphanage+`WHERE id = ?`, id))
}

func (r *OrphanageRepository) GetByName(ctx context.Context, name string) (*domain.Orphanage, error) {
	return scanOrphanage(r.db.QueryRowContext(ctx, selectOrphanage+`WHERE name = ?`, name))
}

func (r *OrphanageRepository) Update(ctx context.Context, orph *domain.Orphanage) error {
	return runInTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkOrphanageUnique(ctx, tx, orph.Name, orph.Email, orph.ID); err != nil {
			return err
		}

		args := append(orphanageArgs(orph), orph.ID)
		res, err := tx.ExecContext(ctx, `
UPDATE orphanages SET
	name = ?, email = ?, students = ?, phone_no = ?, location = ?, activities = ?,
	paypal_info = ?, social_media_links = ?, story = ?, money_uses = ?, photos_links = ?,
	bank_info = ?, act_id = ?, act_type = ?, country = ?, good_work = ?,
	monthly_donation = ?, registration_certificate = ?, blog_link = ?
WHERE id = ?`,
			args...,
		)
		if err != nil {
			return mapConstraintErr(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update orphanage: %w", err)
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *OrphanageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orphanages WHERE id = ?`, id)
	if err != nil {
		return mapConstraintErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete orphanage: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OrphanageRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orphanages`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count orphanages: %w", err)
	}
	return total, nil
}

func (r *OrphanageRepository) List(ctx context.Context, limit, offset int) ([]domain.Orphanage, error) {
	rows, err := r.db.QueryContext(ctx, selectOrphanage+`ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orphanages: %w", err)
	}
	defer rows.Close()

	var orphs []domain.Orphanage
	for rows.Next() {
		orph, err := scanOrphanage(rows)
		if err != nil {
			return nil, err
		}
		orphs = append(orphs, *orph)
	}
	return orphs, rows.Err()
}

func checkOrphanageUnique(ctx context.Context, tx *sql.Tx, name, email string, excludeID int64) error {
	var exists int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM orphanages WHERE name = ? AND id <> ?`, name, excludeID).Scan(&exists)
	if err == nil {
		return repository.ErrDuplicateName
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check name: %w", err)
	}
	err = tx.QueryRowContext(ctx, `SELECT id FROM orphanages WHERE email = ? AND id <> ?`, email, excludeID).Scan(&exists)
	if err == nil {
		return repository.ErrDuplicateEmail
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

func orphanageArgs(orph *domain.Orphanage) []any {
	return []any{
		orph.Name,
		orph.Email,
		orph.Students,
		orph.PhoneNo,
		nullJSON(orph.Location),
		orph.Activities,
		nullJSON(orph.PaypalInfo),
		nullJSON(orph.SocialMediaLinks),
		orph.Story,
		orph.MoneyUses,
		nullJSON(orph.PhotosLinks),
		orph.BankInfo,
		orph.ActID,
		orph.ActType,
		orph.Country,
		orph.GoodWork,
		orph.MonthlyDonation,
		orph.RegistrationCertificate,
		orph.BlogLink,
	}
}

func scanOrphanage(row interface {
	Scan(dest ...any) error
}) (*domain.Orphanage, error) {
	var (
		orph                                 domain.Orphanage
		location, paypal, social, photoLinks sql.NullString
	)
	if err := row.Scan(
		&orph.ID,
		&orph.Name,
		&orph.Email,
		&orph.Students,
		&orph.PhoneNo,
		&location,
		&orph.Activities,
		&paypal,
		&social,
		&orph.Story,
		&orph.MoneyUses,
		&photoLinks,
		&orph.BankInfo,
		&orph.ActID,
		&orph.ActType,
		&orph.Country,
		&orph.GoodWork,
		&orph.MonthlyDonation,
		&orph.RegistrationCertificate,
		&orph.BlogLink,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan orphanage: %w", err)
	}
	orph.Location = rawJSON(location)
	orph.PaypalInfo = rawJSON(paypal)
	orph.SocialMediaLinks = rawJSON(social)
	orph.PhotosLinks = rawJSON(photoLinks)
	return &orph, nil
}

func nullJSON(raw []byte) sql.NullString {
	return sql.NullString{String: string(raw), Valid: len(raw) > 0}
}

func rawJSON(s sql.NullString) []byte {
	if !s.Valid || s.String == "" {
		return nil
	}
	return []byte(s.String)
}
