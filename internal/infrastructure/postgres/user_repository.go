package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"forge/internal/domain/user"
	"forge/internal/shared/apperror"
)

const userColumns = `id, tenant_id, email, password_hash, first_name, last_name,
	       is_active, last_login_at, created_at, updated_at`

// UserRepository implements the user.Repository interface for PostgreSQL.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user with email %s not found", email)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	query := `
		INSERT INTO users (id, tenant_id, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns + `
	`

	u, err := scanUser(r.db.QueryRowContext(
		ctx, query,
		uuid.New(), params.TenantID, params.Email, params.PasswordHash, params.FirstName, params.LastName,
	).Scan)
	if isUniqueViolation(err) {
		return nil, apperror.Validation("a user with email %s already exists", params.Email)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id, actorID uuid.UUID, params user.UpdateParams) (*user.User, error) {
	patch := NewPatch(actorID)
	if params.FirstName != nil {
		patch.Set("first_name", *params.FirstName)
	}
	if params.LastName != nil {
		patch.Set("last_name", *params.LastName)
	}
	if params.IsActive != nil {
		patch.Set("is_active", *params.IsActive)
	}
	patch.Where("id", id)

	query, args := patch.SQL("users", userColumns)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return u, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return apperror.Database(err)
	}

	return nil
}

func scanUser(scan func(dest ...any) error) (*user.User, error) {
	var u user.User
	var lastLoginAt sql.NullTime

	err := scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.IsActive, &lastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastLoginAt.Valid {
		u.LastLoginAt = &lastLoginAt.Time
	}

	return &u, nil
}
