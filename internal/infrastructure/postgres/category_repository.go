package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"forge/internal/domain/category"
	"forge/internal/shared/apperror"
)

const categoryColumns = `id, tenant_id, name, description, type, parent_category_id,
	       is_active, created_at, created_by, updated_at, updated_by`

// CategoryRepository implements the category.Repository interface for PostgreSQL.
type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE tenant_id = $1 AND is_active = TRUE
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*category.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1 AND tenant_id = $2 AND is_active = TRUE
	`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id, tenantID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("category with ID %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *CategoryRepository) ExistsActive(ctx context.Context, id, tenantID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND tenant_id = $2 AND is_active = TRUE)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(&exists); err != nil {
		return false, apperror.Database(err)
	}

	return exists, nil
}

func (r *CategoryRepository) Create(ctx context.Context, tenantID, actorID uuid.UUID, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (id, tenant_id, name, description, type, parent_category_id, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + categoryColumns + `
	`

	c, err := scanCategory(r.db.QueryRowContext(
		ctx, query,
		uuid.New(), tenantID, params.Name, params.Description,
		string(params.Type), params.ParentCategoryID, actorID,
	).Scan)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params category.UpdateParams) (*category.Category, error) {
	patch := NewPatch(actorID)
	if params.Name != nil {
		patch.Set("name", *params.Name)
	}
	if params.Description != nil {
		patch.Set("description", *params.Description)
	}
	if params.Type != nil {
		patch.Set("type", string(*params.Type))
	}
	if params.ParentCategoryID != nil {
		patch.Set("parent_category_id", *params.ParentCategoryID)
	}
	if params.IsActive != nil {
		patch.Set("is_active", *params.IsActive)
	}
	patch.Where("id", id).Where("tenant_id", tenantID)

	query, args := patch.SQL("categories", categoryColumns)
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("category with ID %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *CategoryRepository) Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	query := `
		UPDATE categories
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
		return apperror.NotFound("category with ID %s not found", id)
	}

	return nil
}

func scanCategory(scan func(dest ...any) error) (*category.Category, error) {
	var c category.Category
	var description sql.NullString
	var catType string
	var parentID uuid.NullUUID

	err := scan(
		&c.ID, &c.TenantID, &c.Name, &description, &catType, &parentID,
		&c.IsActive, &c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	c.Type, err = category.ParseType(catType)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		c.Description = &description.String
	}
	if parentID.Valid {
		c.ParentCategoryID = &parentID.UUID
	}

	return &c, nil
}
