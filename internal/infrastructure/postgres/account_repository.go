package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"forge/internal/domain/account"
	"forge/internal/shared/apperror"
)

const accountColumns = `id, tenant_id, account_type_id, name, account_code, description,
	       currency_code, is_active, created_at, created_by, updated_at, updated_by`

// AccountRepository implements the account.Repository interface for PostgreSQL.
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*account.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND is_active = TRUE
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		acc, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, apperror.Database(err)
		}
		accounts = append(accounts, acc)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return accounts, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*account.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1 AND tenant_id = $2 AND is_active = TRUE
	`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id, tenantID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("account with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return acc, nil
}

func (r *AccountRepository) ExistsActive(ctx context.Context, id, tenantID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1 AND tenant_id = $2 AND is_active = TRUE)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(&exists); err != nil {
		return false, apperror.Database(err)
	}

	return exists, nil
}

func (r *AccountRepository) Create(ctx context.Context, tenantID, actorID uuid.UUID, params account.CreateParams) (*account.Account, error) {
	query := `
		INSERT INTO accounts (id, tenant_id, account_type_id, name, account_code, description, currency_code, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + accountColumns + `
	`

	acc, err := scanAccount(r.db.QueryRowContext(
		ctx, query,
		uuid.New(), tenantID, params.AccountTypeID, params.Name,
		params.AccountCode, params.Description, params.CurrencyCode, actorID,
	).Scan)
	if err != nil {
		return nil, apperror.Database(err)
	}

	return acc, nil
}

func (r *AccountRepository) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params account.UpdateParams) (*account.Account, error) {
	patch := NewPatch(actorID)
	if params.AccountTypeID != nil {
		patch.Set("account_type_id", *params.AccountTypeID)
	}
	if params.Name != nil {
		patch.Set("name", *params.Name)
	}
	if params.AccountCode != nil {
		patch.Set("account_code", *params.AccountCode)
	}
	if params.Description != nil {
		patch.Set("description", *params.Description)
	}
	if params.CurrencyCode != nil {
		patch.Set("currency_code", *params.CurrencyCode)
	}
	if params.IsActive != nil {
		patch.Set("is_active", *params.IsActive)
	}
	patch.Where("id", id).Where("tenant_id", tenantID)

	query, args := patch.SQL("accounts", accountColumns)
	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("account with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return acc, nil
}

func (r *AccountRepository) Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, updated_at = NOW(), updated_by = $1
		WHERE id = $2 AND tenant_id = $3 AND is_active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, actorID, id, tenantID)
	if err != nil {
		return apperror.Database(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Database(err)
	}
	if rows == 0 {
		return apperror.NotFound("account with ID %s not found", id)
	}

	return nil
}

func scanAccount(scan func(dest ...any) error) (*account.Account, error) {
	var acc account.Account
	var accountCode, description sql.NullString

	err := scan(
		&acc.ID, &acc.TenantID, &acc.AccountTypeID, &acc.Name, &accountCode, &description,
		&acc.CurrencyCode, &acc.IsActive, &acc.CreatedAt, &acc.CreatedBy, &acc.UpdatedAt, &acc.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if accountCode.Valid {
		acc.AccountCode = &accountCode.String
	}
	if description.Valid {
		acc.Description = &description.String
	}

	return &acc, nil
}
