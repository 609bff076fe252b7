package bills

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billcollect/billcollect/internal/platform/db"
	"github.com/billcollect/billcollect/internal/shared"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	List(ctx context.Context, tenantID string) ([]Bill, error)
	Get(ctx context.Context, id, tenantID string) (*Bill, error)
	Create(ctx context.Context, bill Bill) error
	Update(ctx context.Context, id, tenantID string, updates map[string]any) error
	Delete(ctx context.Context, id, tenantID string) error
}

// The customer is joined only within the bill's tenant, so a reference to
// another tenant's customer reads as unknown.
const selectBills = `
	SELECT b.id, b.bill_number, b.customer_id, b.amount, b.status, b.bill_date,
	       b.due_date, b.paid_date, b.user_id, b.created_at, b.updated_at,
	       COALESCE(c.name, 'Unknown') AS customer_name
	FROM bills b
	LEFT JOIN customers c ON c.id = b.customer_id AND c.user_id = b.user_id`

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

func (r *repository) List(ctx context.Context, tenantID string) ([]Bill, error) {
	rows, err := r.db.Query(ctx, selectBills+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Bill])
}

func (r *repository) Get(ctx context.Context, id, tenantID string) (*Bill, error) {
	rows, err := r.db.Query(ctx, selectBills+` WHERE b.id = $1 AND b.user_id = $2`, id, tenantID)
	if err != nil {
		return nil, err
	}
	b, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Bill])
	if err != nil {
		return nil, db.MapError(err)
	}
	return b, nil
}

func (r *repository) Create(ctx context.Context, b Bill) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO bills (id, bill_number, customer_id, amount, status, bill_date, due_date,
		                   paid_date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.BillNumber, b.CustomerID, b.Amount, b.Status, b.BillDate, b.DueDate,
		b.PaidDate, b.UserID, b.CreatedAt, b.UpdatedAt)
	return db.MapError(err)
}

func (r *repository) Update(ctx context.Context, id, tenantID string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	query, args := db.NewUpdateFrom("bills", updates).Scoped(id, tenantID)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update bill %s: %w", id, shared.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, tenantID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM bills WHERE id = $1 AND user_id = $2`, id, tenantID)
	return err
}
