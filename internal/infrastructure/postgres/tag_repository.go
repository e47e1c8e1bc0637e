package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"forge/internal/domain/tag"
	"forge/internal/shared/apperror"
)

const tagColumns = `id, tenant_id, name, description, is_active, created_at, created_by, updated_at, updated_by`

// TagRepository implements the tag.Repository interface for PostgreSQL.
type TagRepository struct {
	db *DB
}

func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*tag.Tag, error) {
	query := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE tenant_id = $1 AND is_active = TRUE
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var tags []*tag.Tag
	for rows.Next() {
		t, err := scanTag(rows.Scan)
		if err != nil {
			return nil, apperror.Database(err)
		}
		tags = append(tags, t)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return tags, nil
}

func (r *TagRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*tag.Tag, error) {
	query := `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE id = $1 AND tenant_id = $2 AND is_active = TRUE
	`

	t, err := scanTag(r.db.QueryRowContext(ctx, query, id, tenantID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("tag with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return t, nil
}

func (r *TagRepository) Create(ctx context.Context, tenantID, actorID uuid.UUID, params tag.CreateParams) (*tag.Tag, error) {
	query := `
		INSERT INTO tags (id, tenant_id, name, description, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + tagColumns + `
	`

	t, err := scanTag(r.db.QueryRowContext(
		ctx, query,
		uuid.New(), tenantID, params.Name, params.Description, actorID,
	).Scan)
	if err != nil {
		return nil, apperror.Database(err)
	}

	return t, nil
}

func (r *TagRepository) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params tag.UpdateParams) (*tag.Tag, error) {
	patch := NewPatch(actorID)
	if params.Name != nil {
		patch.Set("name", *params.Name)
	}
	if params.Description != nil {
		patch.Set("description", *params.Description)
	}
	if params.IsActive != nil {
		patch.Set("is_active", *params.IsActive)
	}
	patch.Where("id", id).Where("tenant_id", tenantID)

	query, args := patch.SQL("tags", tagColumns)
	t, err := scanTag(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("tag with ID %s not found", id)
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	return t, nil
}

func (r *TagRepository) Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	query := `
		UPDATE tags
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
		return apperror.NotFound("tag with ID %s not found", id)
	}

	return nil
}

func scanTag(scan func(dest ...any) error) (*tag.Tag, error) {
	var t tag.Tag
	var description sql.NullString

	err := scan(
		&t.ID, &t.TenantID, &t.Name, &description, &t.IsActive,
		&t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		t.Description = &description.String
	}

	return &t, nil
}
