package repository

import (
	"context"

	"orphanage-api/internal/domain"
)

// MessageRepository defines persistence operations for contact messages.
// Messages are append-only.
type MessageRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, msg *domain.Message) (int64, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]domain.Message, error)
}
