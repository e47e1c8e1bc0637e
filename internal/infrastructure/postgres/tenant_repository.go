package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"forge/internal/domain/tenant"
	"forge/internal/shared/apperror"
)

const tenantColumns = `id, name, industry, base_currency_code, fiscal_year_end_month,
	       is_active, created_at, created_by, updated_at, updated_by`

// TenantRepository implements the tenant.Repository interface for PostgreSQL.
type TenantRepository struct {
	db *DB
}

func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var tenants []*tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows.Scan)
		if err != nil {
			return nil, apperror.Database(err)
		}
		tenants = append(tenants, t)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return tenants, nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE id = $1 AND is_active = TRUE
	`

	t, err := scanTenant(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("tenant with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return t, nil
}

func (r *TenantRepository) Create(ctx context.Context, actorID uuid.UUID, params tenant.CreateParams) (*tenant.Tenant, error) {
	query := `
		INSERT INTO tenants (id, name, industry, base_currency_code, fiscal_year_end_month, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + tenantColumns + `
	`

	t, err := scanTenant(r.db.QueryRowContext(
		ctx, query,
		uuid.New(), params.Name, params.Industry, params.BaseCurrencyCode, params.FiscalYearEndMonth, actorID,
	).Scan)
	if err != nil {
		return nil, apperror.Database(err)
	}

	return t, nil
}

func (r *TenantRepository) Update(ctx context.Context, id, actorID uuid.UUID, params tenant.UpdateParams) (*tenant.Tenant, error) {
	patch := NewPatch(actorID)
	if params.Name != nil {
		patch.Set("name", *params.Name)
	}
	if params.Industry != nil {
		patch.Set("industry", *params.Industry)
	}
	if params.BaseCurrencyCode != nil {
		patch.Set("base_currency_code", *params.BaseCurrencyCode)
	}
	if params.FiscalYearEndMonth != nil {
		patch.Set("fiscal_year_end_month", *params.FiscalYearEndMonth)
	}
	if params.IsActive != nil {
		patch.Set("is_active", *params.IsActive)
	}
	patch.Where("id", id)

	query, args := patch.SQL("tenants", tenantColumns)
	t, err := scanTenant(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("tenant with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return t, nil
}

func (r *TenantRepository) Deactivate(ctx context.Context, id, actorID uuid.UUID) error {
	query := `
		UPDATE tenants
		SET is_active = FALSE, updated_at = NOW(), updated_by = $1
		WHERE id = $2 AND is_active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, actorID, id)
	if err != nil {
		return apperror.Database(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Database(err)
	}
	if rows == 0 {
		return apperror.NotFound("tenant with ID %s not found", id)
	}

	return nil
}

func scanTenant(scan func(dest ...any) error) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var industry sql.NullString

	err := scan(
		&t.ID, &t.Name, &industry, &t.BaseCurrencyCode, &t.FiscalYearEndMonth,
		&t.IsActive, &t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if industry.Valid {
		t.Industry = &industry.String
	}

	return &t, nil
}
