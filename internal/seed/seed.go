package seed

import (
	"context"
	"fmt"
	"strings"

	"menu-console/internal/domain"
	categoryrepo "menu-console/internal/repository/category"
	itemrepo "menu-console/internal/repository/item"
)

type itemSeed struct {
	Name        string
	Description string
	Price       float64
	Allergens   []string
	SpecialType string
}

type categorySeed struct {
	Name  string
	Items []itemSeed
}

// Slice, not map: seed order defines the display order.
var menu = []categorySeed{
	{Name: "Tacos", Items: []itemSeed{
		{Name: "Carnitas Taco", Description: "Slow-braised pork, onion, cilantro", Price: 4.50},
		{Name: "Baja Fish Taco", Description: "Beer-battered cod, cabbage slaw", Price: 5.50, Allergens: []string{"fish", "gluten"}},
	}},
	{Name: "Drinks", Items: []itemSeed{
		{Name: "Horchata", Description: "Cinnamon rice milk", Price: 3.25, Allergens: []string{"dairy"}},
		{Name: "Agua de Jamaica", Price: 3.00, SpecialType: domain.SpecialSeasonal},
	}},
	{Name: "Desserts", Items: []itemSeed{
		{Name: "Churros", Description: "With chocolate dipping sauce", Price: 6.00, Allergens: []string{"gluten", "dairy"}},
	}},
}

// Apply inserts demo data for manual testing. Re-running is a no-op for
// categories that already exist.
func Apply(ctx context.Context, categories categoryrepo.Repository, items itemrepo.Repository, tenantID string) error {
	existing, err := categories.ListByTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	for _, cs := range menu {
		if _, ok := byName[strings.ToLower(cs.Name)]; ok {
			continue
		}
		cat, err := categories.Create(ctx, domain.Category{
			TenantID:  tenantID,
			Name:      cs.Name,
			SortOrder: len(byName),
			Active:    true,
		})
		if err != nil {
			return fmt.Errorf("create category %q: %w", cs.Name, err)
		}
		byName[strings.ToLower(cs.Name)] = cat.ID

		batch := make([]domain.Item, 0, len(cs.Items))
		for _, s := range cs.Items {
			specialType := s.SpecialType
			if specialType == "" {
				specialType = domain.DefaultSpecialType
			}
			batch = append(batch, domain.Item{
				TenantID:         tenantID,
				CategoryID:       cat.ID,
				Name:             s.Name,
				Description:      s.Description,
				Price:            s.Price,
				Currency:         domain.DefaultCurrency,
				Available:        true,
				Allergens:        s.Allergens,
				SpecialType:      specialType,
				ImageOrientation: domain.DefaultImageOrientation,
			})
		}
		if _, err := items.CreateBatch(ctx, batch); err != nil {
			return fmt.Errorf("seed items for %q: %w", cs.Name, err)
		}
	}
	return nil
}
