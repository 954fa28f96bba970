package item

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"menu-console/internal/domain"
	categoryrepo "menu-console/internal/repository/category"
	itemrepo "menu-console/internal/repository/item"
)

const tenant = "tenant-1"

func newService(t *testing.T) (*Service, *domain.Category, itemrepo.Repository) {
	t.Helper()
	categories := categoryrepo.NewMemory()
	items := itemrepo.NewMemory()
	cat, err := categories.Create(context.Background(), domain.Category{TenantID: tenant, Name: "Tacos", Active: true})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return New(items, categories, nil), cat, items
}

func TestCreate_Validation(t *testing.T) {
	svc, cat, _ := newService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		item domain.Item
		want string
	}{
		{"missing name", domain.Item{TenantID: tenant, CategoryID: cat.ID, Price: 5}, "name is required"},
		{"zero price", domain.Item{TenantID: tenant, CategoryID: cat.ID, Name: "Taco"}, "price must be positive"},
		{"nan price", domain.Item{TenantID: tenant, CategoryID: cat.ID, Name: "Taco", Price: math.NaN()}, "price must be positive"},
		{"infinite price", domain.Item{TenantID: tenant, CategoryID: cat.ID, Name: "Taco", Price: math.Inf(1)}, "price must be positive"},
		{"unknown category", domain.Item{TenantID: tenant, CategoryID: "nope", Name: "Taco", Price: 5}, "does not exist"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.item)
			if !errors.Is(err, domain.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %q", tc.want, err)
			}
		})
	}
}

func TestCreate_NormalizesEnums(t *testing.T) {
	svc, cat, _ := newService(t)

	created, err := svc.Create(context.Background(), domain.Item{
		TenantID:         tenant,
		CategoryID:       cat.ID,
		Name:             "Taco",
		Price:            5,
		Currency:         "doubloons",
		SpecialType:      "lunar",
		ImageOrientation: "diagonal",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Currency != domain.CurrencyUSD {
		t.Fatalf("expected USD fallback, got %q", created.Currency)
	}
	if created.SpecialType != domain.SpecialNone {
		t.Fatalf("expected NONE fallback, got %q", created.SpecialType)
	}
	if created.ImageOrientation != domain.OrientationSquare {
		t.Fatalf("expected SQUARE fallback, got %q", created.ImageOrientation)
	}
}

func TestToggles(t *testing.T) {
	svc, cat, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Item{TenantID: tenant, CategoryID: cat.ID, Name: "Taco", Price: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	it, err := svc.SetAvailable(ctx, tenant, created.ID, true)
	if err != nil || !it.Available {
		t.Fatalf("set available: %+v, %v", it, err)
	}
	it, err = svc.SetSoldOut(ctx, tenant, created.ID, true)
	if err != nil || !it.SoldOut || !it.Available {
		t.Fatalf("set sold out should not touch availability: %+v, %v", it, err)
	}
	if _, err := svc.SetAvailable(ctx, tenant, "nope", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	svc, cat, _ := newService(t)
	ctx := context.Background()

	seed := []domain.Item{
		{Name: "Carnitas Taco", Description: "slow braised pork", Price: 5.50, Available: true},
		{Name: "Veggie Taco", Description: "grilled peppers", Price: 4.75, Available: true},
		{Name: "Horchata", Description: "rice and cinnamon", Price: 3.25, Available: false},
	}
	for _, it := range seed {
		it.TenantID = tenant
		it.CategoryID = cat.ID
		if _, err := svc.Create(ctx, it); err != nil {
			t.Fatalf("create %s: %v", it.Name, err)
		}
	}

	boolPtr := func(b bool) *bool { return &b }
	floatPtr := func(f float64) *float64 { return &f }

	cases := []struct {
		name  string
		query Query
		want  int
	}{
		{"text matches name", Query{Text: "taco"}, 2},
		{"text matches description", Query{Text: "cinnamon"}, 1},
		{"available only", Query{Available: boolPtr(true)}, 2},
		{"price floor", Query{MinPrice: floatPtr(5)}, 1},
		{"price ceiling", Query{MaxPrice: floatPtr(4)}, 1},
		{"combined", Query{Text: "taco", MaxPrice: floatPtr(5)}, 1},
		{"no constraint", Query{}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tenant, tc.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d items, got %d", tc.want, len(got))
			}
		})
	}
}

func TestBulkUpdate(t *testing.T) {
	svc, cat, _ := newService(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		created, err := svc.Create(ctx, domain.Item{TenantID: tenant, CategoryID: cat.ID, Name: name, Price: 5})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, created.ID)
	}

	price := 9.99
	avail := true
	n, err := svc.BulkUpdate(ctx, tenant, ids, Patch{Price: &price, Available: &avail})
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 updates, got %d", n)
	}
	for _, id := range ids {
		it, err := svc.Get(ctx, tenant, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if it.Price != 9.99 || !it.Available {
			t.Fatalf("item %s not patched: %+v", id, it)
		}
	}
}

func TestBulkUpdate_PatchValidation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	for _, bad := range []float64{-1.0, math.NaN(), math.Inf(1)} {
		if _, err := svc.BulkUpdate(ctx, tenant, nil, Patch{Price: &bad}); !errors.Is(err, domain.ErrInvalid) {
			t.Fatalf("expected ErrInvalid for price %v, got %v", bad, err)
		}
	}
	nope := "nope"
	if _, err := svc.BulkUpdate(ctx, tenant, nil, Patch{CategoryID: &nope}); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown category, got %v", err)
	}
}

// failOnUpdate rejects Update for one item id so the compensation path can be
// observed.
type failOnUpdate struct {
	itemrepo.Repository
	failID string
}

func (r *failOnUpdate) Update(ctx context.Context, it domain.Item) (*domain.Item, error) {
	if it.ID == r.failID {
		return nil, errors.New("storage rejected update")
	}
	return r.Repository.Update(ctx, it)
}

func TestBulkUpdate_CompensatesOnFailure(t *testing.T) {
	categories := categoryrepo.NewMemory()
	items := itemrepo.NewMemory()
	ctx := context.Background()

	cat, err := categories.Create(ctx, domain.Category{TenantID: tenant, Name: "Tacos", Active: true})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		created, err := items.Create(ctx, domain.Item{TenantID: tenant, CategoryID: cat.ID, Name: name, Price: 5})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, created.ID)
	}

	svc := New(&failOnUpdate{Repository: items, failID: ids[2]}, categories, nil)

	price := 9.99
	n, err := svc.BulkUpdate(ctx, tenant, ids, Patch{Price: &price})
	if err == nil {
		t.Fatalf("expected mid-batch failure")
	}
	if n != 0 {
		t.Fatalf("failed batch must report zero updates, got %d", n)
	}

	// The first two updates landed before the failure and must be rolled back.
	for _, id := range ids {
		it, err := items.GetByID(ctx, tenant, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if it.Price != 5 {
			t.Fatalf("item %s not reverted: price %v", id, it.Price)
		}
	}
}
