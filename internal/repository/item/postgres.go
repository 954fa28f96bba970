package item

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"menu-console/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const itemColumns = `
id::text, tenant_id, category_id::text, name, COALESCE(description, ''), price, currency,
available, sold_out, bogo, COALESCE(allergens, '{}'), calories, prep_minutes,
special_type, image_orientation, COALESCE(time_availability, ''), COALESCE(date_availability, ''), created_at`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(
		&it.ID, &it.TenantID, &it.CategoryID, &it.Name, &it.Description, &it.Price, &it.Currency,
		&it.Available, &it.SoldOut, &it.Bogo, &it.Allergens, &it.Calories, &it.PrepMinutes,
		&it.SpecialType, &it.ImageOrientation, &it.TimeAvailability, &it.DateAvailability, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepo) ListByTenant(ctx context.Context, tenantID, categoryID string) ([]domain.Item, error) {
	q := `SELECT ` + itemColumns + `
FROM items
WHERE tenant_id = $1
`
	args := []any{tenantID}
	if categoryID != "" {
		q += `AND category_id = $2::uuid
`
		args = append(args, categoryID)
	}
	q += `ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("item repo: list tenant=%s error=%v", tenantID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *it)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("item repo: list rows tenant=%s error=%v", tenantID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Item, error) {
	q := `SELECT ` + itemColumns + `
FROM items
WHERE tenant_id = $1 AND id = $2::uuid
`
	it, err := scanItem(r.pool.QueryRow(ctx, q, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("item repo: get tenant=%s id=%s error=%v", tenantID, id, err)
		return nil, err
	}
	return it, nil
}

const insertItem = `
INSERT INTO items (tenant_id, category_id, name, description, price, currency,
	available, sold_out, bogo, allergens, calories, prep_minutes,
	special_type, image_orientation, time_availability, date_availability)
VALUES ($1, $2::uuid, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''), NULLIF($16, ''))
RETURNING id::text, created_at
`

func insertArgs(it domain.Item) []any {
	return []any{
		it.TenantID, it.CategoryID, it.Name, it.Description, it.Price, it.Currency,
		it.Available, it.SoldOut, it.Bogo, it.Allergens, it.Calories, it.PrepMinutes,
		it.SpecialType, it.ImageOrientation, it.TimeAvailability, it.DateAvailability,
	}
}

func (r *postgresRepo) Create(ctx context.Context, it domain.Item) (*domain.Item, error) {
	out := it
	err := r.pool.QueryRow(ctx, insertItem, insertArgs(it)...).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("item repo: create tenant=%s name=%q error=%v", it.TenantID, it.Name, err)
		return nil, err
	}
	return &out, nil
}

// CreateBatch runs all inserts inside one transaction so a rejected batch
// leaves nothing behind.
func (r *postgresRepo) CreateBatch(ctx context.Context, items []domain.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(insertItem, insertArgs(it)...)
	}

	br := tx.SendBatch(ctx, batch)
	for range items {
		var id string
		var createdAt any
		if err := br.QueryRow().Scan(&id, &createdAt); err != nil {
			br.Close()
			r.logger.Printf("item repo: batch insert error=%v", err)
			return 0, err
		}
	}
	if err := br.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	r.logger.Printf("item repo: batch inserted count=%d tenant=%s", len(items), items[0].TenantID)
	return len(items), nil
}

func (r *postgresRepo) Update(ctx context.Context, it domain.Item) (*domain.Item, error) {
	const q = `
UPDATE items
SET category_id = $3::uuid, name = $4, description = NULLIF($5, ''), price = $6, currency = $7,
	available = $8, sold_out = $9, bogo = $10, allergens = $11, calories = $12, prep_minutes = $13,
	special_type = $14, image_orientation = $15, time_availability = NULLIF($16, ''), date_availability = NULLIF($17, '')
WHERE tenant_id = $1 AND id = $2::uuid
RETURNING created_at
`
	out := it
	err := r.pool.QueryRow(ctx, q,
		it.TenantID, it.ID, it.CategoryID, it.Name, it.Description, it.Price, it.Currency,
		it.Available, it.SoldOut, it.Bogo, it.Allergens, it.Calories, it.PrepMinutes,
		it.SpecialType, it.ImageOrientation, it.TimeAvailability, it.DateAvailability,
	).Scan(&out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("item repo: update tenant=%s id=%s error=%v", it.TenantID, it.ID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, tenantID, id string) error {
	const q = `DELETE FROM items WHERE tenant_id = $1 AND id = $2::uuid`
	tag, err := r.pool.Exec(ctx, q, tenantID, id)
	if err != nil {
		r.logger.Printf("item repo: delete tenant=%s id=%s error=%v", tenantID, id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteByCategory(ctx context.Context, tenantID, categoryID string) error {
	const q = `DELETE FROM items WHERE tenant_id = $1 AND category_id = $2::uuid`
	_, err := r.pool.Exec(ctx, q, tenantID, categoryID)
	if err != nil {
		r.logger.Printf("item repo: delete by category tenant=%s category=%s error=%v", tenantID, categoryID, err)
	}
	return err
}
