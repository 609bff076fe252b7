package customers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billcollect/billcollect/internal/platform/db"
	"github.com/billcollect/billcollect/internal/shared"
)

// Repository is the tenant-scoped customer store. Every method filters by
// tenantID, so rows of other tenants behave as missing.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	List(ctx context.Context, tenantID string) ([]Customer, error)
	Get(ctx context.Context, id, tenantID string) (*Customer, error)
	Create(ctx context.Context, customer Customer) error
	Update(ctx context.Context, id, tenantID string, updates map[string]any) error
	Delete(ctx context.Context, id, tenantID string) error
}

const selectCustomers = `
	SELECT id, name, package, phone, address, status, total_bills, outstanding,
	       user_id, created_at, updated_at
	FROM customers`

type repository struct {
	db   db.DBTX
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) List(ctx context.Context, tenantID string) ([]Customer, error) {
	rows, err := r.db.Query(ctx, selectCustomers+` WHERE user_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Customer])
}

func (r *repository) Get(ctx context.Context, id, tenantID string) (*Customer, error) {
	rows, err := r.db.Query(ctx, selectCustomers+` WHERE id = $1 AND user_id = $2`, id, tenantID)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Customer])
	if err != nil {
		return nil, db.MapError(err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c Customer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, name, package, phone, address, status, total_bills, outstanding,
		                       user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Name, c.Package, c.Phone, c.Address, c.Status, c.TotalBills, c.Outstanding,
		c.UserID, c.CreatedAt, c.UpdatedAt)
	return db.MapError(err)
}

func (r *repository) Update(ctx context.Context, id, tenantID string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	query, args := db.NewUpdateFrom("customers", updates).Scoped(id, tenantID)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update customer %s: %w", id, shared.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, tenantID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND user_id = $2`, id, tenantID)
	return err
}
