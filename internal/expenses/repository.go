package expenses

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
	List(ctx context.Context, tenantID string) ([]Expense, error)
	Get(ctx context.Context, id, tenantID string) (*Expense, error)
	Create(ctx context.Context, expense Expense) error
	Update(ctx context.Context, id, tenantID string, updates map[string]any) error
	Delete(ctx context.Context, id, tenantID string) error
}

// The employee is joined only within the expense's tenant.
const selectExpenses = `
	SELECT e.id, e.expense_number, e.description, e.category, e.amount, e.expense_date,
	       e.employee_id, e.user_id, e.created_at,
	       COALESCE(emp.name, 'Admin') AS employee_name
	FROM expenses e
	LEFT JOIN employees emp ON emp.id = e.employee_id AND emp.user_id = e.user_id`

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

func (r *repository) List(ctx context.Context, tenantID string) ([]Expense, error) {
	rows, err := r.db.Query(ctx, selectExpenses+` WHERE e.user_id = $1 ORDER BY e.created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Expense])
}

func (r *repository) Get(ctx context.Context, id, tenantID string) (*Expense, error) {
	rows, err := r.db.Query(ctx, selectExpenses+` WHERE e.id = $1 AND e.user_id = $2`, id, tenantID)
	if err != nil {
		return nil, err
	}
	e, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Expense])
	if err != nil {
		return nil, db.MapError(err)
	}
	return e, nil
}

func (r *repository) Create(ctx context.Context, e Expense) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO expenses (id, expense_number, description, category, amount, expense_date,
		                      employee_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.ExpenseNumber, e.Description, e.Category, e.Amount, e.ExpenseDate,
		e.EmployeeID, e.UserID, e.CreatedAt)
	return db.MapError(err)
}

func (r *repository) Update(ctx context.Context, id, tenantID string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	query, args := db.NewUpdateFrom("expenses", updates).Scoped(id, tenantID)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update expense %s: %w", id, shared.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, tenantID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, tenantID)
	return err
}
