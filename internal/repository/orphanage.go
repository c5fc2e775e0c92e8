package repository

import (
	"context"

	"orphanage-api/internal/domain"
)

// OrphanageRepository defines persistence operations for Orphanage entities.
type OrphanageRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, orph *domain.Orphanage) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Orphanage, error)
	GetByName(ctx context.Context, name string) (*domain.Orphanage, error)
	Update(ctx context.Context, orph *domain.Orphanage) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]domain.Orphanage, error)
}
