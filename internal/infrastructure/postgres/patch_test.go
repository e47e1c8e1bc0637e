package postgres

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestPatchSQL(t *testing.T) {
	actor := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	id := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	tenant := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	tests := []struct {
		name      string
		build     func() *Patch
		wantSQL   string
		wantArgs  []any
		wantEmpty bool
	}{
		{
			name: "single column with tenant scope",
			build: func() *Patch {
				return NewPatch(actor).
					Set("name", "Groceries").
					Where("id", id).
					Where("tenant_id", tenant)
			},
			wantSQL:  "UPDATE categories SET name = $1, updated_at = NOW(), updated_by = $2 WHERE id = $3 AND tenant_id = $4 RETURNING id, name",
			wantArgs: []any{"Groceries", actor, id, tenant},
		},
		{
			name: "multiple columns keep set order",
			build: func() *Patch {
				return NewPatch(actor).
					Set("name", "Cash").
					Set("is_active", false).
					Where("id", id)
			},
			wantSQL:  "UPDATE categories SET name = $1, is_active = $2, updated_at = NOW(), updated_by = $3 WHERE id = $4 RETURNING id, name",
			wantArgs: []any{"Cash", false, actor, id},
		},
		{
			name: "raw predicate scopes through a subquery",
			build: func() *Patch {
				return NewPatch(actor).
					Set("budgeted_amount", "150.00").
					Where("id", id).
					WhereExpr("budget_id IN (SELECT id FROM budgets WHERE tenant_id = $?)", tenant)
			},
			wantSQL:  "UPDATE categories SET budgeted_amount = $1, updated_at = NOW(), updated_by = $2 WHERE id = $3 AND budget_id IN (SELECT id FROM budgets WHERE tenant_id = $4) RETURNING id, name",
			wantArgs: []any{"150.00", actor, id, tenant},
		},
		{
			name: "no set columns still stamps audit fields",
			build: func() *Patch {
				return NewPatch(actor).Where("id", id)
			},
			wantSQL:   "UPDATE categories SET updated_at = NOW(), updated_by = $1 WHERE id = $2 RETURNING id, name",
			wantArgs:  []any{actor, id},
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.build()
			if got := p.IsEmpty(); got != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.wantEmpty)
			}
			gotSQL, gotArgs := p.SQL("categories", "id, name")
			if gotSQL != tt.wantSQL {
				t.Errorf("SQL:\n got %q\nwant %q", gotSQL, tt.wantSQL)
			}
			if !reflect.DeepEqual(gotArgs, tt.wantArgs) {
				t.Errorf("args:\n got %v\nwant %v", gotArgs, tt.wantArgs)
			}
		})
	}
}

func TestPatchSQLWithoutReturning(t *testing.T) {
	actor := uuid.New()
	id := uuid.New()

	gotSQL, gotArgs := NewPatch(actor).
		Set("is_active", true).
		Where("id", id).
		SQL("tenants", "")

	wantSQL := "UPDATE tenants SET is_active = $1, updated_at = NOW(), updated_by = $2 WHERE id = $3"
	if gotSQL != wantSQL {
		t.Errorf("SQL:\n got %q\nwant %q", gotSQL, wantSQL)
	}
	if len(gotArgs) != 3 {
		t.Errorf("expected 3 args, got %d", len(gotArgs))
	}
}
