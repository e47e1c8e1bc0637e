package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"forge/internal/domain/accounttype"
	"forge/internal/shared/apperror"
)

const accountTypeColumns = `id, name, normal_balance, is_active, created_at, created_by, updated_at, updated_by`

// AccountTypeRepository implements the accounttype.Repository interface for PostgreSQL.
type AccountTypeRepository struct {
	db *DB
}

func NewAccountTypeRepository(db *DB) *AccountTypeRepository {
	return &AccountTypeRepository{db: db}
}

func (r *AccountTypeRepository) List(ctx context.Context) ([]*accounttype.AccountType, error) {
	query := `
		SELECT ` + accountTypeColumns + `
		FROM account_types
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var types []*accounttype.AccountType
	for rows.Next() {
		t, err := scanAccountType(rows.Scan)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return types, nil
}

func (r *AccountTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*accounttype.AccountType, error) {
	query := `
		SELECT ` + accountTypeColumns + `
		FROM account_types
		WHERE id = $1 AND is_active = TRUE
	`

	t, err := scanAccountType(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("account type with ID %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (r *AccountTypeRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM account_types WHERE id = $1 AND is_active = TRUE)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, apperror.Database(err)
	}

	return exists, nil
}

func (r *AccountTypeRepository) Create(ctx context.Context, actorID uuid.UUID, params accounttype.CreateParams) (*accounttype.AccountType, error) {
	query := `
		INSERT INTO account_types (id, name, normal_balance, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + accountTypeColumns + `
	`

	t, err := scanAccountType(r.db.QueryRowContext(
		ctx, query,
		uuid.New(), params.Name, string(params.NormalBalance), actorID,
	).Scan)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (r *AccountTypeRepository) Update(ctx context.Context, id, actorID uuid.UUID, params accounttype.UpdateParams) (*accounttype.AccountType, error) {
	patch := NewPatch(actorID)
	if params.Name != nil {
		patch.Set("name", *params.Name)
	}
	if params.NormalBalance != nil {
		patch.Set("normal_balance", string(*params.NormalBalance))
	}
	if params.IsActive != nil {
		patch.Set("is_active", *params.IsActive)
	}
	patch.Where("id", id)

	query, args := patch.SQL("account_types", accountTypeColumns)
	t, err := scanAccountType(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("account type with ID %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (r *AccountTypeRepository) Deactivate(ctx context.Context, id, actorID uuid.UUID) error {
	query := `
		UPDATE account_types
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
		return apperror.NotFound("account type with ID %s not found", id)
	}

	return nil
}

// scanAccountType decodes one row, failing on a normal_balance code that the
// domain does not recognize.
func scanAccountType(scan func(dest ...any) error) (*accounttype.AccountType, error) {
	var t accounttype.AccountType
	var normalBalance string

	err := scan(
		&t.ID, &t.Name, &normalBalance, &t.IsActive,
		&t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	t.NormalBalance, err = accounttype.ParseNormalBalance(normalBalance)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
