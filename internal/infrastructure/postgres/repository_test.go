package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"forge/internal/domain/transaction"
	"forge/internal/shared/apperror"
)

// script is a minimal database/sql driver for repository tests: it records
// every statement, counts commits and rollbacks, and serves query results
// from a respond function. No live database involved.
type script struct {
	stmts     []string
	commits   int
	rollbacks int
	respond   func(query string) (driver.Rows, error)
}

func (s *script) record(query string) {
	s.stmts = append(s.stmts, strings.Join(strings.Fields(query), " "))
}

func (s *script) has(fragment string) bool {
	for _, stmt := range s.stmts {
		if strings.Contains(stmt, fragment) {
			return true
		}
	}
	return false
}

func (s *script) last() string {
	if len(s.stmts) == 0 {
		return ""
	}
	return s.stmts[len(s.stmts)-1]
}

type scriptConnector struct{ s *script }

func (c scriptConnector) Connect(context.Context) (driver.Conn, error) {
	return &scriptConn{s: c.s}, nil
}

func (c scriptConnector) Driver() driver.Driver { return scriptDriver{} }

type scriptDriver struct{}

func (scriptDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through the connector")
}

type scriptConn struct{ s *script }

func (c *scriptConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not scripted")
}

func (c *scriptConn) Close() error { return nil }

func (c *scriptConn) Begin() (driver.Tx, error) {
	return &scriptTx{s: c.s}, nil
}

func (c *scriptConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return &scriptTx{s: c.s}, nil
}

func (c *scriptConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.s.record(query)
	if c.s.respond != nil {
		return c.s.respond(query)
	}
	return emptyRows(), nil
}

func (c *scriptConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.s.record(query)
	return driver.RowsAffected(1), nil
}

type scriptTx struct{ s *script }

func (t *scriptTx) Commit() error   { t.s.commits++; return nil }
func (t *scriptTx) Rollback() error { t.s.rollbacks++; return nil }

type valueRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
}

func (r *valueRows) Columns() []string { return r.cols }
func (r *valueRows) Close() error      { return nil }

func (r *valueRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

func emptyRows() driver.Rows {
	return &valueRows{}
}

func singleValueRows(v driver.Value) driver.Rows {
	return &valueRows{cols: []string{"value"}, rows: [][]driver.Value{{v}}}
}

func newScriptDB(s *script) *DB {
	return &DB{sql.OpenDB(scriptConnector{s: s})}
}

func TestReadQueriesExcludeDeactivatedRows(t *testing.T) {
	id := uuid.New()
	tenantID := uuid.New()

	tests := []struct {
		name string
		call func(ctx context.Context, db *DB) error
	}{
		{
			name: "Tag List",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewTagRepository(db).ListByTenant(ctx, tenantID)
				return err
			},
		},
		{
			name: "Tag Get",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewTagRepository(db).GetByID(ctx, id, tenantID)
				return err
			},
		},
		{
			name: "Account List",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewAccountRepository(db).ListByTenant(ctx, tenantID)
				return err
			},
		},
		{
			name: "Account Get",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewAccountRepository(db).GetByID(ctx, id, tenantID)
				return err
			},
		},
		{
			name: "Category List",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewCategoryRepository(db).ListByTenant(ctx, tenantID)
				return err
			},
		},
		{
			name: "Category Get",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewCategoryRepository(db).GetByID(ctx, id, tenantID)
				return err
			},
		},
		{
			name: "Budget List",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewBudgetRepository(db).ListByTenant(ctx, tenantID)
				return err
			},
		},
		{
			name: "Budget Get",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewBudgetRepository(db).GetByID(ctx, id, tenantID)
				return err
			},
		},
		{
			name: "Line Item List",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewBudgetRepository(db).ListLineItems(ctx, id, tenantID)
				return err
			},
		},
		{
			name: "Tenant List",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewTenantRepository(db).List(ctx)
				return err
			},
		},
		{
			name: "Tenant Get",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewTenantRepository(db).GetByID(ctx, id)
				return err
			},
		},
		{
			name: "Currency List",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewCurrencyRepository(db).List(ctx)
				return err
			},
		},
		{
			name: "Currency Get",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewCurrencyRepository(db).GetByCode(ctx, "USD")
				return err
			},
		},
		{
			name: "Account Type List",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewAccountTypeRepository(db).List(ctx)
				return err
			},
		},
		{
			name: "Account Type Get",
			call: func(ctx context.Context, db *DB) error {
				_, err := NewAccountTypeRepository(db).GetByID(ctx, id)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &script{}
			db := newScriptDB(s)
			defer db.Close()

			err := tt.call(context.Background(), db)
			if err != nil && apperror.KindOf(err) != apperror.KindNotFound {
				t.Fatalf("unexpected error: %v", err)
			}

			if !strings.Contains(s.last(), "is_active = TRUE") {
				t.Errorf("query does not exclude deactivated rows: %s", s.last())
			}
		})
	}
}

func TestGetByIDMapsNoRowsToNotFound(t *testing.T) {
	s := &script{}
	db := newScriptDB(s)
	defer db.Close()

	_, err := NewTagRepository(db).GetByID(context.Background(), uuid.New(), uuid.New())
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Errorf("kind = %v, want not found", apperror.KindOf(err))
	}
}

var transactionCols = strings.Split(strings.Join(strings.Fields(transactionColumns), " "), ", ")

func transactionRow(tenantID, actorID uuid.UUID) [][]driver.Value {
	now := time.Now().UTC()
	return [][]driver.Value{{
		uuid.NewString(), tenantID.String(), now, "Office supplies", "EXPENSE", nil, []byte("[]"),
		"100.00", "USD", false, nil, nil, nil,
		now, actorID.String(), now, actorID.String(),
	}}
}

// The write path must leave nothing behind when any journal entry names an
// account the tenant does not own or has deactivated.
func TestTransactionCreateRollsBackOnInvalidAccount(t *testing.T) {
	tenantID := uuid.New()
	actorID := uuid.New()
	goodAccount := uuid.New()
	badAccount := uuid.New()

	params := transaction.CreateParams{
		TransactionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description:     "Office supplies",
		Type:            transaction.TypeExpense,
		Amount:          decimal.RequireFromString("100.00"),
		CurrencyCode:    "USD",
		JournalEntries: []transaction.CreateEntryParams{
			{AccountID: goodAccount, EntryType: transaction.EntryTypeDebit, Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
			{AccountID: badAccount, EntryType: transaction.EntryTypeCredit, Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
		},
	}

	t.Run("First Entry Invalid", func(t *testing.T) {
		s := &script{}
		s.respond = func(query string) (driver.Rows, error) {
			switch {
			case strings.Contains(query, "INSERT INTO transactions"):
				return &valueRows{cols: transactionCols, rows: transactionRow(tenantID, actorID)}, nil
			case strings.Contains(query, "SELECT EXISTS"):
				return singleValueRows(false), nil
			}
			return emptyRows(), nil
		}
		db := newScriptDB(s)
		defer db.Close()

		_, err := NewTransactionRepository(db).Create(context.Background(), tenantID, actorID, params)
		if apperror.KindOf(err) != apperror.KindValidation {
			t.Fatalf("kind = %v, want validation: %v", apperror.KindOf(err), err)
		}
		if !strings.Contains(apperror.Message(err), goodAccount.String()) {
			t.Errorf("message = %q, want to name account %s", apperror.Message(err), goodAccount)
		}

		if s.commits != 0 {
			t.Errorf("commits = %d, want 0", s.commits)
		}
		if s.rollbacks == 0 {
			t.Error("transaction was never rolled back")
		}
		if s.has("INSERT INTO journal_entries") {
			t.Error("journal entry written despite invalid account")
		}
	})

	t.Run("Second Entry Invalid", func(t *testing.T) {
		// The first account resolves, the second does not: the entry row
		// already written for the first leg must roll back with the rest.
		s := &script{}
		checks := 0
		s.respond = func(query string) (driver.Rows, error) {
			switch {
			case strings.Contains(query, "INSERT INTO transactions"):
				return &valueRows{cols: transactionCols, rows: transactionRow(tenantID, actorID)}, nil
			case strings.Contains(query, "SELECT EXISTS"):
				checks++
				return singleValueRows(checks == 1), nil
			}
			return emptyRows(), nil
		}
		db := newScriptDB(s)
		defer db.Close()

		_, err := NewTransactionRepository(db).Create(context.Background(), tenantID, actorID, params)
		if apperror.KindOf(err) != apperror.KindValidation {
			t.Fatalf("kind = %v, want validation: %v", apperror.KindOf(err), err)
		}
		if !strings.Contains(apperror.Message(err), badAccount.String()) {
			t.Errorf("message = %q, want to name account %s", apperror.Message(err), badAccount)
		}

		if s.commits != 0 {
			t.Errorf("commits = %d, want 0", s.commits)
		}
		if s.rollbacks == 0 {
			t.Error("transaction was never rolled back")
		}
	})

	t.Run("All Entries Valid Commits", func(t *testing.T) {
		s := &script{}
		s.respond = func(query string) (driver.Rows, error) {
			switch {
			case strings.Contains(query, "INSERT INTO transactions"):
				return &valueRows{cols: transactionCols, rows: transactionRow(tenantID, actorID)}, nil
			case strings.Contains(query, "SELECT EXISTS"):
				return singleValueRows(true), nil
			}
			return emptyRows(), nil
		}
		db := newScriptDB(s)
		defer db.Close()

		if _, err := NewTransactionRepository(db).Create(context.Background(), tenantID, actorID, params); err != nil {
			t.Fatalf("Create() = %v, want nil", err)
		}

		if s.commits != 1 {
			t.Errorf("commits = %d, want 1", s.commits)
		}
		if !s.has("INSERT INTO journal_entries") {
			t.Error("no journal entries written")
		}
	})
}
