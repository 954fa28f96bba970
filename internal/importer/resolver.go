package importer

import (
	"context"
	"fmt"
	"strings"

	"menu-console/internal/domain"
	categoryrepo "menu-console/internal/repository/category"
)

// resolver matches category names to ids for the duration of one import run.
// The cache is seeded from current storage state and grows as the run creates
// categories, so two rows naming the same new category (case-insensitively)
// share one create.
type resolver struct {
	repo     categoryrepo.Repository
	tenantID string
	byName   map[string]string
	existing int
	created  int
}

func newResolver(ctx context.Context, repo categoryrepo.Repository, tenantID string) (*resolver, error) {
	cats, err := repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]string, len(cats))
	for _, c := range cats {
		byName[strings.ToLower(c.Name)] = c.ID
	}
	return &resolver{
		repo:     repo,
		tenantID: tenantID,
		byName:   byName,
		existing: len(cats),
	}, nil
}

func (r *resolver) resolve(ctx context.Context, name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := r.byName[key]; ok {
		return id, nil
	}

	created, err := r.repo.Create(ctx, domain.Category{
		TenantID:  r.tenantID,
		Name:      strings.TrimSpace(name),
		SortOrder: r.existing + r.created,
		Active:    true,
	})
	if err != nil {
		return "", fmt.Errorf("create category %q: %w", name, err)
	}
	r.byName[key] = created.ID
	r.created++
	return created.ID, nil
}
