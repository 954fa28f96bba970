package item

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"menu-console/internal/domain"
	categoryrepo "menu-console/internal/repository/category"
	itemrepo "menu-console/internal/repository/item"
)

type Service struct {
	items      itemrepo.Repository
	categories categoryrepo.Repository
	logger     *log.Logger
}

func New(items itemrepo.Repository, categories categoryrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{items: items, categories: categories, logger: logger}
}

func (s *Service) List(ctx context.Context, tenantID, categoryID string) ([]domain.Item, error) {
	return s.items.ListByTenant(ctx, tenantID, categoryID)
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (*domain.Item, error) {
	return s.items.GetByID(ctx, tenantID, id)
}

// validPrice rejects non-positive and non-finite values; NaN and Inf compare
// false against <= 0 and would otherwise pass.
func validPrice(p float64) bool {
	return p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}

func (s *Service) validate(ctx context.Context, it *domain.Item) error {
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		return fmt.Errorf("%w: item name is required", domain.ErrInvalid)
	}
	if !validPrice(it.Price) {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalid)
	}
	if _, err := s.categories.GetByID(ctx, it.TenantID, it.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: category %q does not exist", domain.ErrInvalid, it.CategoryID)
		}
		return err
	}
	it.Currency = domain.NormalizeCurrency(it.Currency)
	it.SpecialType = domain.NormalizeSpecialType(it.SpecialType)
	it.ImageOrientation = domain.NormalizeImageOrientation(it.ImageOrientation)
	return nil
}

func (s *Service) Create(ctx context.Context, it domain.Item) (*domain.Item, error) {
	if err := s.validate(ctx, &it); err != nil {
		return nil, err
	}
	return s.items.Create(ctx, it)
}

func (s *Service) Update(ctx context.Context, it domain.Item) (*domain.Item, error) {
	if err := s.validate(ctx, &it); err != nil {
		return nil, err
	}
	return s.items.Update(ctx, it)
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	return s.items.Delete(ctx, tenantID, id)
}

func (s *Service) SetAvailable(ctx context.Context, tenantID, id string, available bool) (*domain.Item, error) {
	it, err := s.items.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	it.Available = available
	return s.items.Update(ctx, *it)
}

func (s *Service) SetSoldOut(ctx context.Context, tenantID, id string, soldOut bool) (*domain.Item, error) {
	it, err := s.items.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	it.SoldOut = soldOut
	return s.items.Update(ctx, *it)
}

// Query narrows a search. Zero values mean "no constraint".
type Query struct {
	Text       string
	CategoryID string
	Available  *bool
	MinPrice   *float64
	MaxPrice   *float64
}

// Search filters the tenant's items in memory; the catalog for one tenant is
// console-sized.
func (s *Service) Search(ctx context.Context, tenantID string, q Query) ([]domain.Item, error) {
	items, err := s.items.ListByTenant(ctx, tenantID, q.CategoryID)
	if err != nil {
		return nil, err
	}

	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if text != "" &&
			!strings.Contains(strings.ToLower(it.Name), text) &&
			!strings.Contains(strings.ToLower(it.Description), text) {
			continue
		}
		if q.Available != nil && it.Available != *q.Available {
			continue
		}
		if q.MinPrice != nil && it.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && it.Price > *q.MaxPrice {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// Patch lists the bulk-editable fields. Nil means "leave unchanged".
type Patch struct {
	CategoryID  *string  `json:"categoryId,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Available   *bool    `json:"available,omitempty"`
	SoldOut     *bool    `json:"soldOut,omitempty"`
	Bogo        *bool    `json:"bogo,omitempty"`
	SpecialType *string  `json:"specialType,omitempty"`
}

func (p Patch) apply(it domain.Item) domain.Item {
	if p.CategoryID != nil {
		it.CategoryID = *p.CategoryID
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Currency != nil {
		it.Currency = domain.NormalizeCurrency(*p.Currency)
	}
	if p.Available != nil {
		it.Available = *p.Available
	}
	if p.SoldOut != nil {
		it.SoldOut = *p.SoldOut
	}
	if p.Bogo != nil {
		it.Bogo = *p.Bogo
	}
	if p.SpecialType != nil {
		it.SpecialType = domain.NormalizeSpecialType(*p.SpecialType)
	}
	return it
}

// BulkUpdate applies the patch to each item in order. If a mid-batch update
// is rejected, the already-applied updates are compensated by restoring their
// prior snapshots in reverse order, then the failure is returned.
func (s *Service) BulkUpdate(ctx context.Context, tenantID string, ids []string, patch Patch) (int, error) {
	if patch.Price != nil && !validPrice(*patch.Price) {
		return 0, fmt.Errorf("%w: price must be positive", domain.ErrInvalid)
	}
	if patch.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, tenantID, *patch.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return 0, fmt.Errorf("%w: category %q does not exist", domain.ErrInvalid, *patch.CategoryID)
			}
			return 0, err
		}
	}

	var applied []domain.Item // prior snapshots, in apply order
	for _, id := range ids {
		prev, err := s.items.GetByID(ctx, tenantID, id)
		if err != nil {
			s.revert(ctx, applied)
			return 0, fmt.Errorf("bulk update item %s: %w", id, err)
		}
		if _, err := s.items.Update(ctx, patch.apply(*prev)); err != nil {
			s.revert(ctx, applied)
			return 0, fmt.Errorf("bulk update item %s: %w", id, err)
		}
		applied = append(applied, *prev)
	}
	return len(applied), nil
}

func (s *Service) revert(ctx context.Context, snapshots []domain.Item) {
	for i := len(snapshots) - 1; i >= 0; i-- {
		if _, err := s.items.Update(ctx, snapshots[i]); err != nil {
			s.logger.Printf("item service: revert item %s failed: %v", snapshots[i].ID, err)
		}
	}
}
