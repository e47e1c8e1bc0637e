package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"forge/internal/domain/currency"
	"forge/internal/shared/apperror"
)

const currencyColumns = `code, name, symbol, is_active, created_at, created_by, updated_at, updated_by`

// CurrencyRepository implements the currency.Repository interface for PostgreSQL.
type CurrencyRepository struct {
	db *DB
}

func NewCurrencyRepository(db *DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) List(ctx context.Context) ([]*currency.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE is_active = TRUE
		ORDER BY code
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var currencies []*currency.Currency
	for rows.Next() {
		c, err := scanCurrency(rows.Scan)
		if err != nil {
			return nil, apperror.Database(err)
		}
		currencies = append(currencies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return currencies, nil
}

func (r *CurrencyRepository) GetByCode(ctx context.Context, code string) (*currency.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies
		WHERE code = $1 AND is_active = TRUE
	`

	c, err := scanCurrency(r.db.QueryRowContext(ctx, query, code).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("currency with code %s not found", code)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return c, nil
}

func (r *CurrencyRepository) Create(ctx context.Context, actorID uuid.UUID, params currency.CreateParams) (*currency.Currency, error) {
	query := `
		INSERT INTO currencies (code, name, symbol, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + currencyColumns + `
	`

	c, err := scanCurrency(r.db.QueryRowContext(
		ctx, query,
		params.Code, params.Name, params.Symbol, actorID,
	).Scan)
	if isUniqueViolation(err) {
		return nil, apperror.Validation("currency with code %s already exists", params.Code)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return c, nil
}

func (r *CurrencyRepository) Update(ctx context.Context, code string, actorID uuid.UUID, params currency.UpdateParams) (*currency.Currency, error) {
	patch := NewPatch(actorID)
	if params.Name != nil {
		patch.Set("name", *params.Name)
	}
	if params.Symbol != nil {
		patch.Set("symbol", *params.Symbol)
	}
	if params.IsActive != nil {
		patch.Set("is_active", *params.IsActive)
	}
	patch.Where("code", code)

	query, args := patch.SQL("currencies", currencyColumns)
	c, err := scanCurrency(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("currency with code %s not found", code)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return c, nil
}

func (r *CurrencyRepository) Deactivate(ctx context.Context, code string, actorID uuid.UUID) error {
	query := `
		UPDATE currencies
		SET is_active = FALSE, updated_at = NOW(), updated_by = $1
		WHERE code = $2 AND is_active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, actorID, code)
	if err != nil {
		return apperror.Database(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Database(err)
	}
	if rows == 0 {
		return apperror.NotFound("currency with code %s not found", code)
	}

	return nil
}

func scanCurrency(scan func(dest ...any) error) (*currency.Currency, error) {
	var c currency.Currency
	var symbol sql.NullString

	err := scan(
		&c.Code, &c.Name, &symbol, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if symbol.Valid {
		c.Symbol = &symbol.String
	}

	return &c, nil
}

// isUniqueViolation reports whether err is the Postgres unique_violation
// error (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
