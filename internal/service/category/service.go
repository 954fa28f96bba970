package category

import (
	"context"
	"fmt"
	"strings"

	"menu-console/internal/domain"
	categoryrepo "menu-console/internal/repository/category"
	itemrepo "menu-console/internal/repository/item"
)

type Service struct {
	categories categoryrepo.Repository
	items      itemrepo.Repository
}

func New(categories categoryrepo.Repository, items itemrepo.Repository) *Service {
	return &Service{categories: categories, items: items}
}

func (s *Service) List(ctx context.Context, tenantID string) ([]domain.Category, error) {
	return s.categories.ListByTenant(ctx, tenantID)
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, tenantID, id)
}

// Create appends the category to the end of the display order.
func (s *Service) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalid)
	}
	existing, err := s.categories.ListByTenant(ctx, c.TenantID)
	if err != nil {
		return nil, err
	}
	c.SortOrder = len(existing)
	return s.categories.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalid)
	}
	return s.categories.Update(ctx, c)
}

// Delete removes the category and its items. Items go first so the cascade
// holds for every repository backend.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := s.categories.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.items.DeleteByCategory(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete category items: %w", err)
	}
	return s.categories.Delete(ctx, tenantID, id)
}

// Reorder rewrites SortOrder to match the given id order. Every active
// category of the tenant must appear exactly once.
func (s *Service) Reorder(ctx context.Context, tenantID string, ids []string) error {
	existing, err := s.categories.ListByTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	byID := make(map[string]domain.Category, len(existing))
	for _, c := range existing {
		byID[c.ID] = c
	}
	if len(ids) != len(existing) {
		return fmt.Errorf("%w: expected %d category ids, got %d", domain.ErrInvalid, len(existing), len(ids))
	}

	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		c, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown category id %q", domain.ErrInvalid, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate category id %q", domain.ErrInvalid, id)
		}
		seen[id] = true
		if c.SortOrder == i {
			continue
		}
		c.SortOrder = i
		if _, err := s.categories.Update(ctx, c); err != nil {
			return fmt.Errorf("reorder category %s: %w", id, err)
		}
	}
	return nil
}
