package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"forge/internal/domain/budget"
	"forge/internal/shared/apperror"
)

const budgetColumns = `id, tenant_id, name, start_date, end_date, currency_code,
	       is_active, created_at, created_by, updated_at, updated_by`

const lineItemColumns = `id, budget_id, category_id, account_id, budgeted_amount,
	       is_active, created_at, created_by, updated_at, updated_by`

// BudgetRepository implements the budget.Repository interface for
// PostgreSQL. Line items are tenant-scoped through their parent budget.
type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*budget.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE tenant_id = $1 AND is_active = TRUE
		ORDER BY start_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var budgets []*budget.Budget
	for rows.Next() {
		b, err := scanBudget(rows.Scan)
		if err != nil {
			return nil, apperror.Database(err)
		}
		budgets = append(budgets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return budgets, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*budget.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE id = $1 AND tenant_id = $2 AND is_active = TRUE
	`

	b, err := scanBudget(r.db.QueryRowContext(ctx, query, id, tenantID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("budget with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return b, nil
}

func (r *BudgetRepository) ExistsActive(ctx context.Context, id, tenantID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM budgets WHERE id = $1 AND tenant_id = $2 AND is_active = TRUE)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(&exists); err != nil {
		return false, apperror.Database(err)
	}

	return exists, nil
}

func (r *BudgetRepository) Create(ctx context.Context, tenantID, actorID uuid.UUID, params budget.CreateParams) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (id, tenant_id, name, start_date, end_date, currency_code, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + budgetColumns + `
	`

	b, err := scanBudget(r.db.QueryRowContext(
		ctx, query,
		uuid.New(), tenantID, params.Name, params.StartDate, params.EndDate, params.CurrencyCode, actorID,
	).Scan)
	if err != nil {
		return nil, apperror.Database(err)
	}

	return b, nil
}

func (r *BudgetRepository) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params budget.UpdateParams) (*budget.Budget, error) {
	patch := NewPatch(actorID)
	if params.Name != nil {
		patch.Set("name", *params.Name)
	}
	if params.StartDate != nil {
		patch.Set("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		patch.Set("end_date", *params.EndDate)
	}
	if params.CurrencyCode != nil {
		patch.Set("currency_code", *params.CurrencyCode)
	}
	if params.IsActive != nil {
		patch.Set("is_active", *params.IsActive)
	}
	patch.Where("id", id).Where("tenant_id", tenantID)

	query, args := patch.SQL("budgets", budgetColumns)
	b, err := scanBudget(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("budget with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return b, nil
}

func (r *BudgetRepository) Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	query := `
		UPDATE budgets
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
		return apperror.NotFound("budget with ID %s not found", id)
	}

	return nil
}

func (r *BudgetRepository) ListLineItems(ctx context.Context, budgetID, tenantID uuid.UUID) ([]*budget.LineItem, error) {
	query := `
		SELECT li.id, li.budget_id, li.category_id, li.account_id, li.budgeted_amount,
		       li.is_active, li.created_at, li.created_by, li.updated_at, li.updated_by
		FROM budget_line_items li
		JOIN budgets b ON b.id = li.budget_id
		WHERE li.budget_id = $1 AND b.tenant_id = $2 AND li.is_active = TRUE
		ORDER BY li.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, budgetID, tenantID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var items []*budget.LineItem
	for rows.Next() {
		li, err := scanLineItem(rows.Scan)
		if err != nil {
			return nil, apperror.Database(err)
		}
		items = append(items, li)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return items, nil
}

func (r *BudgetRepository) GetLineItemByID(ctx context.Context, id, tenantID uuid.UUID) (*budget.LineItem, error) {
	query := `
		SELECT li.id, li.budget_id, li.category_id, li.account_id, li.budgeted_amount,
		       li.is_active, li.created_at, li.created_by, li.updated_at, li.updated_by
		FROM budget_line_items li
		JOIN budgets b ON b.id = li.budget_id
		WHERE li.id = $1 AND b.tenant_id = $2 AND li.is_active = TRUE
	`

	li, err := scanLineItem(r.db.QueryRowContext(ctx, query, id, tenantID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("budget line item with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return li, nil
}

func (r *BudgetRepository) CreateLineItem(ctx context.Context, budgetID, actorID uuid.UUID, params budget.CreateLineItemParams) (*budget.LineItem, error) {
	query := `
		INSERT INTO budget_line_items (id, budget_id, category_id, account_id, budgeted_amount, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + lineItemColumns + `
	`

	li, err := scanLineItem(r.db.QueryRowContext(
		ctx, query,
		uuid.New(), budgetID, params.CategoryID, params.AccountID, params.BudgetedAmount, actorID,
	).Scan)
	if err != nil {
		return nil, apperror.Database(err)
	}

	return li, nil
}

func (r *BudgetRepository) UpdateLineItem(ctx context.Context, id, tenantID, actorID uuid.UUID, params budget.UpdateLineItemParams) (*budget.LineItem, error) {
	patch := NewPatch(actorID)
	if params.CategoryID != nil {
		patch.Set("category_id", *params.CategoryID)
	}
	if params.AccountID != nil {
		patch.Set("account_id", *params.AccountID)
	}
	if params.BudgetedAmount != nil {
		patch.Set("budgeted_amount", *params.BudgetedAmount)
	}
	if params.IsActive != nil {
		patch.Set("is_active", *params.IsActive)
	}
	// Line items carry no tenant column; scope the update through the
	// parent budget.
	patch.Where("id", id).
		WhereExpr("budget_id IN (SELECT id FROM budgets WHERE tenant_id = $?)", tenantID)

	query, args := patch.SQL("budget_line_items", lineItemColumns)
	li, err := scanLineItem(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("budget line item with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return li, nil
}

func (r *BudgetRepository) DeactivateLineItem(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	query := `
		UPDATE budget_line_items li
		SET is_active = FALSE, updated_at = NOW(), updated_by = $1
		FROM budgets b
		WHERE li.id = $2 AND li.budget_id = b.id AND b.tenant_id = $3 AND li.is_active = TRUE
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
		return apperror.NotFound("budget line item with ID %s not found", id)
	}

	return nil
}

func scanBudget(scan func(dest ...any) error) (*budget.Budget, error) {
	var b budget.Budget

	err := scan(
		&b.ID, &b.TenantID, &b.Name, &b.StartDate, &b.EndDate, &b.CurrencyCode,
		&b.IsActive, &b.CreatedAt, &b.CreatedBy, &b.UpdatedAt, &b.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func scanLineItem(scan func(dest ...any) error) (*budget.LineItem, error) {
	var li budget.LineItem
	var categoryID, accountID uuid.NullUUID

	err := scan(
		&li.ID, &li.BudgetID, &categoryID, &accountID, &li.BudgetedAmount,
		&li.IsActive, &li.CreatedAt, &li.CreatedBy, &li.UpdatedAt, &li.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		li.CategoryID = &categoryID.UUID
	}
	if accountID.Valid {
		li.AccountID = &accountID.UUID
	}

	return &li, nil
}
