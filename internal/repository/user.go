package repository

import (
	"context"
	"time"

	"orphanage-api/internal/domain"
)

// UserRepository defines persistence operations for User entities. Create and
// Update run their uniqueness pre-checks and the write in one transaction; the
// unique indices remain the final arbiter under concurrent inserts.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateToken(ctx context.Context, id int64, token string, expiration time.Time) error
	TouchLastSeen(ctx context.Context, id int64, seen time.Time) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}
