package category

import (
	"context"

	"menu-console/internal/domain"
)

type Repository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Category, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, tenantID, id string) error
}
