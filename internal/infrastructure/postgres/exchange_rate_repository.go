package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"forge/internal/domain/exchangerate"
	"forge/internal/shared/apperror"
)

const exchangeRateColumns = `id, tenant_id, base_currency_code, target_currency_code, rate, rate_date,
	       source, created_at, created_by, updated_at, updated_by`

// ExchangeRateRepository implements the exchangerate.Repository interface
// for PostgreSQL. Rows with a NULL tenant_id are system-wide defaults.
type ExchangeRateRepository struct {
	db *DB
}

func NewExchangeRateRepository(db *DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

func (r *ExchangeRateRepository) List(ctx context.Context, tenantID *uuid.UUID) ([]*exchangerate.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE tenant_id IS NOT DISTINCT FROM $1
		ORDER BY rate_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var rates []*exchangerate.ExchangeRate
	for rows.Next() {
		rate, err := scanExchangeRate(rows.Scan)
		if err != nil {
			return nil, apperror.Database(err)
		}
		rates = append(rates, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return rates, nil
}

func (r *ExchangeRateRepository) GetByID(ctx context.Context, id uuid.UUID) (*exchangerate.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE id = $1
	`

	rate, err := scanExchangeRate(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("exchange rate with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return rate, nil
}

func (r *ExchangeRateRepository) GetLatest(ctx context.Context, tenantID *uuid.UUID, baseCode, targetCode string) (*exchangerate.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE tenant_id IS NOT DISTINCT FROM $1 AND base_currency_code = $2 AND target_currency_code = $3
		ORDER BY rate_date DESC
		LIMIT 1
	`

	rate, err := scanExchangeRate(r.db.QueryRowContext(ctx, query, tenantID, baseCode, targetCode).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("no exchange rate found for %s/%s", baseCode, targetCode)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return rate, nil
}

func (r *ExchangeRateRepository) Create(ctx context.Context, actorID uuid.UUID, params exchangerate.CreateParams) (*exchangerate.ExchangeRate, error) {
	query := `
		INSERT INTO exchange_rates (id, tenant_id, base_currency_code, target_currency_code, rate, rate_date, source, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + exchangeRateColumns + `
	`

	rate, err := scanExchangeRate(r.db.QueryRowContext(
		ctx, query,
		uuid.New(), params.TenantID, params.BaseCurrencyCode, params.TargetCurrencyCode,
		params.Rate, params.RateDate, params.Source, actorID,
	).Scan)
	if err != nil {
		return nil, apperror.Database(err)
	}

	return rate, nil
}

func (r *ExchangeRateRepository) Update(ctx context.Context, id, actorID uuid.UUID, params exchangerate.UpdateParams) (*exchangerate.ExchangeRate, error) {
	patch := NewPatch(actorID)
	if params.Rate != nil {
		patch.Set("rate", *params.Rate)
	}
	if params.RateDate != nil {
		patch.Set("rate_date", *params.RateDate)
	}
	if params.Source != nil {
		patch.Set("source", *params.Source)
	}
	patch.Where("id", id)

	query, args := patch.SQL("exchange_rates", exchangeRateColumns)
	rate, err := scanExchangeRate(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("exchange rate with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return rate, nil
}

func (r *ExchangeRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exchange_rates WHERE id = $1`, id)
	if err != nil {
		return apperror.Database(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Database(err)
	}
	if rows == 0 {
		return apperror.NotFound("exchange rate with ID %s not found", id)
	}

	return nil
}

func scanExchangeRate(scan func(dest ...any) error) (*exchangerate.ExchangeRate, error) {
	var rate exchangerate.ExchangeRate
	var tenantID uuid.NullUUID
	var source sql.NullString

	err := scan(
		&rate.ID, &tenantID, &rate.BaseCurrencyCode, &rate.TargetCurrencyCode, &rate.Rate, &rate.RateDate,
		&source, &rate.CreatedAt, &rate.CreatedBy, &rate.UpdatedAt, &rate.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if tenantID.Valid {
		rate.TenantID = &tenantID.UUID
	}
	if source.Valid {
		rate.Source = &source.String
	}

	return &rate, nil
}
