package employees

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
	List(ctx context.Context, tenantID string) ([]Employee, error)
	Get(ctx context.Context, id, tenantID string) (*Employee, error)
	Create(ctx context.Context, employee Employee) error
	Update(ctx context.Context, id, tenantID string, updates map[string]any) error
	Delete(ctx context.Context, id, tenantID string) error
}

const selectEmployees = `
	SELECT id, employee_number, name, position, email, phone, salary, join_date, status,
	       user_id, created_at, updated_at
	FROM employees`

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

func (r *repository) List(ctx context.Context, tenantID string) ([]Employee, error) {
	rows, err := r.db.Query(ctx, selectEmployees+` WHERE user_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Employee])
}

func (r *repository) Get(ctx context.Context, id, tenantID string) (*Employee, error) {
	rows, err := r.db.Query(ctx, selectEmployees+` WHERE id = $1 AND user_id = $2`, id, tenantID)
	if err != nil {
		return nil, err
	}
	e, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Employee])
	if err != nil {
		return nil, db.MapError(err)
	}
	return e, nil
}

func (r *repository) Create(ctx context.Context, e Employee) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO employees (id, employee_number, name, position, email, phone, salary,
		                       join_date, status, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.EmployeeNumber, e.Name, e.Position, e.Email, e.Phone, e.Salary,
		e.JoinDate, e.Status, e.UserID, e.CreatedAt, e.UpdatedAt)
	return db.MapError(err)
}

func (r *repository) Update(ctx context.Context, id, tenantID string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	query, args := db.NewUpdateFrom("employees", updates).Scoped(id, tenantID)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update employee %s: %w", id, shared.ErrNotFound)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, tenantID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1 AND user_id = $2`, id, tenantID)
	return err
}
