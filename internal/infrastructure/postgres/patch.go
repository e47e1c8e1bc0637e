package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Patch builds a sparse UPDATE statement. Only columns explicitly Set are
// written, and updated_at/updated_by are stamped on every build so the
// audit columns can never be skipped by a partial write.
type Patch struct {
	actorID    uuid.UUID
	setCols    []string
	setArgs    []any
	whereExprs []string
	whereArgs  []any
}

func NewPatch(actorID uuid.UUID) *Patch {
	return &Patch{actorID: actorID}
}

func (p *Patch) Set(column string, value any) *Patch {
	p.setCols = append(p.setCols, column)
	p.setArgs = append(p.setArgs, value)
	return p
}

func (p *Patch) Where(column string, value any) *Patch {
	return p.WhereExpr(column+" = $?", value)
}

// WhereExpr appends a raw predicate taking one argument. The $? token is
// replaced with the argument's placeholder number at build time.
func (p *Patch) WhereExpr(expr string, value any) *Patch {
	p.whereExprs = append(p.whereExprs, expr)
	p.whereArgs = append(p.whereArgs, value)
	return p
}

// IsEmpty reports whether no columns were Set. Callers reject empty
// patches before touching the database.
func (p *Patch) IsEmpty() bool {
	return len(p.setCols) == 0
}

// SQL renders the UPDATE statement and its ordered argument list.
// Placeholders are numbered across SET columns, the updated_by stamp,
// and WHERE columns in that order.
func (p *Patch) SQL(table, returning string) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(p.setArgs)+1+len(p.whereArgs))

	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")

	n := 1
	for i, col := range p.setCols {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s = $%d", col, n)
		args = append(args, p.setArgs[i])
		n++
	}
	if len(p.setCols) > 0 {
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "updated_at = NOW(), updated_by = $%d", n)
	args = append(args, p.actorID)
	n++

	b.WriteString(" WHERE ")
	for i, expr := range p.whereExprs {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(strings.Replace(expr, "$?", fmt.Sprintf("$%d", n), 1))
		args = append(args, p.whereArgs[i])
		n++
	}

	if returning != "" {
		b.WriteString(" RETURNING ")
		b.WriteString(returning)
	}

	return b.String(), args
}
