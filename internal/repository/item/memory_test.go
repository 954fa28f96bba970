package item

import (
	"context"
	"errors"
	"testing"

	"menu-console/internal/domain"
)

func TestMemory_TenantIsolation(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	alpha, err := repo.Create(ctx, domain.Item{TenantID: "alpha", CategoryID: "c1", Name: "Taco", Price: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, domain.Item{TenantID: "beta", CategoryID: "c1", Name: "Soda", Price: 2}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.GetByID(ctx, "beta", alpha.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-tenant get should miss, got %v", err)
	}
	if err := repo.Delete(ctx, "beta", alpha.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-tenant delete should miss, got %v", err)
	}
	if _, err := repo.Update(ctx, domain.Item{ID: alpha.ID, TenantID: "beta", Name: "Hijacked", Price: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-tenant update should miss, got %v", err)
	}

	list, err := repo.ListByTenant(ctx, "alpha", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Taco" {
		t.Fatalf("unexpected tenant view %+v", list)
	}
}

func TestMemory_ListFiltersByCategory(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	for _, it := range []domain.Item{
		{TenantID: "alpha", CategoryID: "tacos", Name: "Taco", Price: 5},
		{TenantID: "alpha", CategoryID: "drinks", Name: "Soda", Price: 2},
	} {
		if _, err := repo.Create(ctx, it); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := repo.ListByTenant(ctx, "alpha", "drinks")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Soda" {
		t.Fatalf("unexpected filtered view %+v", list)
	}
}

func TestMemory_DeleteByCategory(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	taco, _ := repo.Create(ctx, domain.Item{TenantID: "alpha", CategoryID: "tacos", Name: "Taco", Price: 5})
	soda, _ := repo.Create(ctx, domain.Item{TenantID: "alpha", CategoryID: "drinks", Name: "Soda", Price: 2})
	other, _ := repo.Create(ctx, domain.Item{TenantID: "beta", CategoryID: "tacos", Name: "Beta Taco", Price: 6})

	if err := repo.DeleteByCategory(ctx, "alpha", "tacos"); err != nil {
		t.Fatalf("delete by category: %v", err)
	}

	if _, err := repo.GetByID(ctx, "alpha", taco.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("item in deleted category should be gone, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "alpha", soda.ID); err != nil {
		t.Fatalf("item in another category should survive: %v", err)
	}
	if _, err := repo.GetByID(ctx, "beta", other.ID); err != nil {
		t.Fatalf("other tenant's item should survive: %v", err)
	}
}

func TestMemory_CreateBatch(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	n, err := repo.CreateBatch(ctx, []domain.Item{
		{TenantID: "alpha", CategoryID: "tacos", Name: "A", Price: 1},
		{TenantID: "alpha", CategoryID: "tacos", Name: "B", Price: 2},
	})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 created, got %d", n)
	}

	failing := NewMemoryFailing(errors.New("down"))
	n, err = failing.CreateBatch(ctx, []domain.Item{{TenantID: "alpha", Name: "A", Price: 1}})
	if err == nil || n != 0 {
		t.Fatalf("failing repo should reject batch, got n=%d err=%v", n, err)
	}
	list, _ := failing.ListByTenant(ctx, "alpha", "")
	if len(list) != 0 {
		t.Fatalf("rejected batch must not persist rows, got %d", len(list))
	}
}
