package dashboard

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billcollect/billcollect/internal/shared"
)

// Repository runs the dashboard aggregates for one tenant.
type Repository interface {
	SumPaidBills(ctx context.Context, tenantID string) (shared.Amount, error)
	SumExpenses(ctx context.Context, tenantID string) (shared.Amount, error)
	CountCustomers(ctx context.Context, tenantID string) (int64, error)
	CountPendingBills(ctx context.Context, tenantID string) (int64, error)
	CustomersByStatus(ctx context.Context, tenantID string) (map[string]int64, error)
	LastPaidBill(ctx context.Context, tenantID string) (*LastCollectedBill, error)
}

// PGRepository implements Repository on a pool, so concurrent aggregates
// each run on their own connection.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) SumPaidBills(ctx context.Context, tenantID string) (shared.Amount, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM bills WHERE user_id = $1 AND status = 'paid'`, tenantID)
}

func (r *PGRepository) SumExpenses(ctx context.Context, tenantID string) (shared.Amount, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`, tenantID)
}

func (r *PGRepository) CountCustomers(ctx context.Context, tenantID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE user_id = $1`, tenantID).Scan(&n)
	return n, err
}

func (r *PGRepository) CountPendingBills(ctx context.Context, tenantID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bills WHERE user_id = $1 AND status IN ('due', 'overdue')`, tenantID).Scan(&n)
	return n, err
}

func (r *PGRepository) CustomersByStatus(ctx context.Context, tenantID string) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM customers WHERE user_id = $1 GROUP BY status`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *PGRepository) LastPaidBill(ctx context.Context, tenantID string) (*LastCollectedBill, error) {
	var last LastCollectedBill
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(c.name, 'Unknown'), b.amount, b.bill_number, b.paid_date
		FROM bills b
		LEFT JOIN customers c ON c.id = b.customer_id AND c.user_id = b.user_id
		WHERE b.user_id = $1 AND b.status = 'paid'
		ORDER BY b.paid_date DESC NULLS LAST, b.created_at DESC
		LIMIT 1`, tenantID).Scan(&last.CustomerName, &last.Amount, &last.BillNumber, &last.PaidDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &last, nil
}

func (r *PGRepository) sum(ctx context.Context, query, tenantID string) (shared.Amount, error) {
	var total shared.Amount
	if err := r.pool.QueryRow(ctx, query, tenantID).Scan(&total); err != nil {
		return shared.Amount{}, err
	}
	return total, nil
}

var _ Repository = (*PGRepository)(nil)
