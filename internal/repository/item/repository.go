package item

import (
	"context"

	"menu-console/internal/domain"
)

type Repository interface {
	// ListByTenant returns the tenant's items, optionally narrowed to one
	// category. An empty categoryID lists everything.
	ListByTenant(ctx context.Context, tenantID, categoryID string) ([]domain.Item, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.Item, error)
	Create(ctx context.Context, it domain.Item) (*domain.Item, error)
	// CreateBatch inserts all items in a single all-or-nothing call and
	// returns the number created. On error nothing is persisted.
	CreateBatch(ctx context.Context, items []domain.Item) (int, error)
	Update(ctx context.Context, it domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, tenantID, id string) error
	DeleteByCategory(ctx context.Context, tenantID, categoryID string) error
}
