package category

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"menu-console/internal/domain"
)

// memoryRepo keeps categories in a map keyed by id. It backs tests and the
// importer CLI's dry-run mode.
type memoryRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Category
}

func NewMemory() Repository {
	return &memoryRepo{byID: make(map[string]domain.Category)}
}

func (r *memoryRepo) ListByTenant(_ context.Context, tenantID string) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Category
	for _, c := range r.byID {
		if c.TenantID == tenantID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *memoryRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || c.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memoryRepo) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.Name = strings.TrimSpace(c.Name)
	r.byID[c.ID] = c
	return &c, nil
}

func (r *memoryRepo) Update(_ context.Context, c domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[c.ID]
	if !ok || prev.TenantID != c.TenantID {
		return nil, domain.ErrNotFound
	}
	c.CreatedAt = prev.CreatedAt
	r.byID[c.ID] = c
	return &c, nil
}

func (r *memoryRepo) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || c.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
