package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	phone_no TEXT NOT NULL DEFAULT '',
	is_admin INTEGER NOT NULL DEFAULT 0,
	last_seen DATETIME NOT NULL,
	token TEXT UNIQUE,
	token_expiration DATETIME
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if user.LastSeen.IsZero() {
		user.LastSeen = time.Now().UTC()
	}

	err := runInTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, user.Username).Scan(&exists)
		if err == nil {
			return repository.ErrDuplicateUsername
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check username: %w", err)
		}
		err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, user.Email).Scan(&exists)
		if err == nil {
			return repository.ErrDuplicateEmail
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check email: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
INSERT INTO users (username, email, password_hash, phone_no, is_admin, last_seen, token, token_expiration)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			user.Username,
			user.Email,
			user.PasswordHash,
			user.PhoneNo,
			user.IsAdmin,
			user.LastSeen,
			nullString(user.Token),
			nullTime(user.TokenExpiration),
		)
		if err != nil {
			return mapConstraintErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("user last insert id: %w", err)
		}
		user.ID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

const selectUser = `
SELECT id, username, email, password_hash, phone_no, is_admin, last_seen, token, token_expiration
FROM users
`

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+`WHERE id = ?`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+`WHERE username = ?`, username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+`WHERE email = ?`, email))
}

func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+`WHERE token = ?`, token))
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return runInTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ? AND id <> ?`, user.Username, user.ID).Scan(&exists)
		if err == nil {
			return repository.ErrDuplicateUsername
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check username: %w", err)
		}
		err = tx.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ? AND id <> ?`, user.Email, user.ID).Scan(&exists)
		if err == nil {
			return repository.ErrDuplicateEmail
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check email: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
UPDATE users SET username = ?, email = ?, password_hash = ?, phone_no = ?
WHERE id = ?`,
			user.Username,
			user.Email,
			user.PasswordHash,
			user.PhoneNo,
			user.ID,
		)
		if err != nil {
			return mapConstraintErr(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *UserRepository) UpdateToken(ctx context.Context, id int64, token string, expiration time.Time) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users SET token = ?, token_expiration = ?
WHERE id = ?`,
		nullString(token),
		nullTime(expiration),
		id,
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update token: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, id int64, seen time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_seen = ? WHERE id = ?`, seen, id); err != nil {
		return fmt.Errorf("touch last seen: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapConstraintErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+`ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user       domain.User
		token      sql.NullString
		expiration sql.NullTime
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.PhoneNo,
		&user.IsAdmin,
		&user.LastSeen,
		&token,
		&expiration,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Token = token.String
	user.TokenExpiration = expiration.Time
	return &user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
