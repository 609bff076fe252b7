package users

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billcollect/billcollect/internal/platform/db"
)

const userColumns = `id, email, first_name, last_name, profile_image_url, password, created_at, updated_at`

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get loads a user by id.
func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail loads a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, u User) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+userColumns,
		u.ID, u.Email, u.FirstName, u.LastName, u.ProfileImageURL, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return scanUser(row)
}

// Upsert inserts the user or refreshes its profile fields when the id exists.
// The stored email and password are kept when the incoming record carries
// none.
func (r *Repository) Upsert(ctx context.Context, u User) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			email = COALESCE(EXCLUDED.email, users.email),
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			password = COALESCE(EXCLUDED.password, users.password),
			updated_at = EXCLUDED.updated_at
		RETURNING `+userColumns,
		u.ID, u.Email, u.FirstName, u.LastName, u.ProfileImageURL, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &u, nil
}

var _ RepositoryPort = (*Repository)(nil)
