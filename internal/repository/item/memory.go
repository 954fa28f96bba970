package item

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"menu-console/internal/domain"
)

type memoryRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Item

	// failBatch forces CreateBatch to fail; tests use it to exercise the
	// all-or-nothing contract.
	failBatch error
}

func NewMemory() Repository {
	return &memoryRepo{byID: make(map[string]domain.Item)}
}

// NewMemoryFailing returns a memory repository whose CreateBatch always
// rejects with err.
func NewMemoryFailing(err error) Repository {
	return &memoryRepo{byID: make(map[string]domain.Item), failBatch: err}
}

func (r *memoryRepo) ListByTenant(_ context.Context, tenantID, categoryID string) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Item
	for _, it := range r.byID {
		if it.TenantID != tenantID {
			continue
		}
		if categoryID != "" && it.CategoryID != categoryID {
			continue
		}
		result = append(result, it)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *memoryRepo) GetByID(_ context.Context, tenantID, id string) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.byID[id]
	if !ok || it.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (r *memoryRepo) create(it domain.Item) domain.Item {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}
	r.byID[it.ID] = it
	return it
}

func (r *memoryRepo) Create(_ context.Context, it domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.create(it)
	return &out, nil
}

func (r *memoryRepo) CreateBatch(_ context.Context, items []domain.Item) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failBatch != nil {
		return 0, r.failBatch
	}
	for _, it := range items {
		r.create(it)
	}
	return len(items), nil
}

func (r *memoryRepo) Update(_ context.Context, it domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[it.ID]
	if !ok || prev.TenantID != it.TenantID {
		return nil, domain.ErrNotFound
	}
	it.CreatedAt = prev.CreatedAt
	r.byID[it.ID] = it
	return &it, nil
}

func (r *memoryRepo) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.byID[id]
	if !ok || it.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryRepo) DeleteByCategory(_ context.Context, tenantID, categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, it := range r.byID {
		if it.TenantID == tenantID && it.CategoryID == categoryID {
			delete(r.byID, id)
		}
	}
	return nil
}
