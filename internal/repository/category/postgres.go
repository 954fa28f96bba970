package category

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

func (r *postgresRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.Category, error) {
	const q = `
SELECT id::text, tenant_id, name, COALESCE(description, ''), sort_order, active, created_at
FROM categories
WHERE tenant_id = $1
ORDER BY sort_order ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q, tenantID)
	if err != nil {
		r.logger.Printf("category repo: list tenant=%s error=%v", tenantID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.SortOrder, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("category repo: list rows tenant=%s error=%v", tenantID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Category, error) {
	const q = `
SELECT id::text, tenant_id, name, COALESCE(description, ''), sort_order, active, created_at
FROM categories
WHERE tenant_id = $1 AND id = $2::uuid
`
	var c domain.Category
	err := r.pool.QueryRow(ctx, q, tenantID, id).Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.SortOrder, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("category repo: get tenant=%s id=%s error=%v", tenantID, id, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (tenant_id, name, description, sort_order, active)
VALUES ($1, $2, NULLIF($3, ''), $4, $5)
RETURNING id::text, created_at
`
	out := c
	err := r.pool.QueryRow(ctx, q, c.TenantID, c.Name, c.Description, c.SortOrder, c.Active).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("category repo: create tenant=%s name=%q error=%v", c.TenantID, c.Name, err)
		return nil, err
	}
	r.logger.Printf("category repo: created tenant=%s id=%s name=%q", out.TenantID, out.ID, out.Name)
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name = $3, description = NULLIF($4, ''), sort_order = $5, active = $6
WHERE tenant_id = $1 AND id = $2::uuid
RETURNING created_at
`
	out := c
	err := r.pool.QueryRow(ctx, q, c.TenantID, c.ID, c.Name, c.Description, c.SortOrder, c.Active).
		Scan(&out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("category repo: update tenant=%s id=%s error=%v", c.TenantID, c.ID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, tenantID, id string) error {
	// Items reference categories with ON DELETE CASCADE as a backstop; the
	// service deletes items explicitly first so memory and postgres behave alike.
	const q = `DELETE FROM categories WHERE tenant_id = $1 AND id = $2::uuid`
	tag, err := r.pool.Exec(ctx, q, tenantID, id)
	if err != nil {
		r.logger.Printf("category repo: delete tenant=%s id=%s error=%v", tenantID, id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
