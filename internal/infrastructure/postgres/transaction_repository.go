package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"forge/internal/domain/transaction"
	"forge/internal/shared/apperror"
)

const transactionColumns = `id, tenant_id, transaction_date, description, type, category_id, tags_json,
	       amount, currency_code, is_reconciled, reconciliation_date, notes, source_document_url,
	       created_at, created_by, updated_at, updated_by`

const journalEntryColumns = `id, transaction_id, account_id, entry_type, amount, currency_code,
	       exchange_rate, converted_amount, memo, created_at, created_by, updated_at, updated_by`

// TransactionRepository implements the transaction.Repository interface for
// PostgreSQL. Writes that touch both the transactions and journal_entries
// tables run inside one database transaction.
type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1
		ORDER BY transaction_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return transactions, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND tenant_id = $2
	`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, tenantID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("transaction with ID %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// Create inserts the transaction row and every journal-entry row inside one
// database transaction. Each entry's account is resolved under the tenant
// before its row is written; the first invalid account aborts the whole
// write and nothing is persisted.
func (r *TransactionRepository) Create(ctx context.Context, tenantID, actorID uuid.UUID, params transaction.CreateParams) (*transaction.Transaction, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer dbTx.Rollback()

	tagsJSON, err := marshalTagIDs(params.TagIDs)
	if err != nil {
		return nil, apperror.Database(err)
	}

	isReconciled := false
	if params.IsReconciled != nil {
		isReconciled = *params.IsReconciled
	}

	insertTx := `
		INSERT INTO transactions (id, tenant_id, transaction_date, description, type, category_id, tags_json,
		                          amount, currency_code, is_reconciled, reconciliation_date, notes,
		                          source_document_url, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		RETURNING ` + transactionColumns + `
	`

	created, err := scanTransaction(dbTx.QueryRowContext(
		ctx, insertTx,
		uuid.New(), tenantID, params.TransactionDate, params.Description, string(params.Type),
		params.CategoryID, tagsJSON, params.Amount, params.CurrencyCode, isReconciled,
		params.ReconciliationDate, params.Notes, params.SourceDocumentURL, actorID,
	).Scan)
	if err != nil {
		return nil, err
	}

	accountCheck := `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1 AND tenant_id = $2 AND is_active = TRUE)`
	insertEntry := `
		INSERT INTO journal_entries (id, transaction_id, account_id, entry_type, amount, currency_code,
		                             exchange_rate, converted_amount, memo, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`

	for _, entry := range params.JournalEntries {
		var exists bool
		if err := dbTx.QueryRowContext(ctx, accountCheck, entry.AccountID, tenantID).Scan(&exists); err != nil {
			return nil, apperror.Database(err)
		}
		if !exists {
			return nil, apperror.Validation("account ID %s is invalid or inactive", entry.AccountID)
		}

		_, err := dbTx.ExecContext(
			ctx, insertEntry,
			uuid.New(), created.ID, entry.AccountID, string(entry.EntryType), entry.Amount,
			entry.CurrencyCode, entry.ExchangeRate, entry.ConvertedAmount, entry.Memo, actorID,
		)
		if err != nil {
			return nil, apperror.Database(err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, apperror.Database(err)
	}

	return created, nil
}

func (r *TransactionRepository) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params transaction.UpdateParams) (*transaction.Transaction, error) {
	patch := NewPatch(actorID)
	if params.TransactionDate != nil {
		patch.Set("transaction_date", *params.TransactionDate)
	}
	if params.Description != nil {
		patch.Set("description", *params.Description)
	}
	if params.Type != nil {
		patch.Set("type", string(*params.Type))
	}
	if params.CategoryID != nil {
		patch.Set("category_id", *params.CategoryID)
	}
	if params.TagIDs != nil {
		tagsJSON, err := marshalTagIDs(params.TagIDs)
		if err != nil {
			return nil, apperror.Database(err)
		}
		patch.Set("tags_json", tagsJSON)
	}
	if params.Amount != nil {
		patch.Set("amount", *params.Amount)
	}
	if params.CurrencyCode != nil {
		patch.Set("currency_code", *params.CurrencyCode)
	}
	if params.IsReconciled != nil {
		patch.Set("is_reconciled", *params.IsReconciled)
	}
	if params.ReconciliationDate != nil {
		patch.Set("reconciliation_date", *params.ReconciliationDate)
	}
	if params.Notes != nil {
		patch.Set("notes", *params.Notes)
	}
	if params.SourceDocumentURL != nil {
		patch.Set("source_document_url", *params.SourceDocumentURL)
	}
	patch.Where("id", id).Where("tenant_id", tenantID)

	query, args := patch.SQL("transactions", transactionColumns)
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("transaction with ID %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// Delete removes the journal entries first and then the transaction row, all
// inside one database transaction. A zero-row transaction delete means the
// id is not owned by the tenant; everything rolls back and nothing is
// partially removed.
func (r *TransactionRepository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Database(err)
	}
	defer dbTx.Rollback()

	deleteEntries := `
		DELETE FROM journal_entries
		WHERE transaction_id IN (SELECT id FROM transactions WHERE id = $1 AND tenant_id = $2)
	`
	if _, err := dbTx.ExecContext(ctx, deleteEntries, id, tenantID); err != nil {
		return apperror.Database(err)
	}

	result, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return apperror.Database(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Database(err)
	}
	if rows == 0 {
		return apperror.NotFound("transaction with ID %s not found", id)
	}

	if err := dbTx.Commit(); err != nil {
		return apperror.Database(err)
	}

	return nil
}

func (r *TransactionRepository) ListEntries(ctx context.Context, transactionID, tenantID uuid.UUID) ([]*transaction.JournalEntry, error) {
	var exists bool
	check := `SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1 AND tenant_id = $2)`
	if err := r.db.QueryRowContext(ctx, check, transactionID, tenantID).Scan(&exists); err != nil {
		return nil, apperror.Database(err)
	}
	if !exists {
		return nil, apperror.NotFound("transaction with ID %s not found", transactionID)
	}

	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE transaction_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var entries []*transaction.JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}

	return entries, nil
}

func (r *TransactionRepository) GetEntryByID(ctx context.Context, entryID, tenantID uuid.UUID) (*transaction.JournalEntry, error) {
	query := `
		SELECT je.id, je.transaction_id, je.account_id, je.entry_type, je.amount, je.currency_code,
		       je.exchange_rate, je.converted_amount, je.memo, je.created_at, je.created_by,
		       je.updated_at, je.updated_by
		FROM journal_entries je
		JOIN transactions t ON t.id = je.transaction_id
		WHERE je.id = $1 AND t.tenant_id = $2
	`

	e, err := scanJournalEntry(r.db.QueryRowContext(ctx, query, entryID, tenantID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("journal entry with ID %s not found", entryID)
	}
	if err != nil {
		return nil, err
	}

	return e, nil
}

func scanTransaction(scan func(dest ...any) error) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var txType string
	var categoryID uuid.NullUUID
	var tagsJSON []byte
	var reconciliationDate sql.NullTime
	var notes, sourceDocumentURL sql.NullString

	err := scan(
		&tx.ID, &tx.TenantID, &tx.TransactionDate, &tx.Description, &txType, &categoryID, &tagsJSON,
		&tx.Amount, &tx.CurrencyCode, &tx.IsReconciled, &reconciliationDate, &notes, &sourceDocumentURL,
		&tx.CreatedAt, &tx.CreatedBy, &tx.UpdatedAt, &tx.UpdatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	tx.Type, err = transaction.ParseType(txType)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		tx.CategoryID = &categoryID.UUID
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &tx.TagIDs); err != nil {
			return nil, apperror.Database(err)
		}
	}
	if reconciliationDate.Valid {
		tx.ReconciliationDate = &reconciliationDate.Time
	}
	if notes.Valid {
		tx.Notes = &notes.String
	}
	if sourceDocumentURL.Valid {
		tx.SourceDocumentURL = &sourceDocumentURL.String
	}

	return &tx, nil
}

func scanJournalEntry(scan func(dest ...any) error) (*transaction.JournalEntry, error) {
	var e transaction.JournalEntry
	var entryType string
	var exchangeRate, convertedAmount decimal.NullDecimal
	var memo sql.NullString

	err := scan(
		&e.ID, &e.TransactionID, &e.AccountID, &entryType, &e.Amount, &e.CurrencyCode,
		&exchangeRate, &convertedAmount, &memo, &e.CreatedAt, &e.CreatedBy, &e.UpdatedAt, &e.UpdatedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, apperror.Database(err)
	}

	e.EntryType, err = transaction.ParseEntryType(entryType)
	if err != nil {
		return nil, err
	}

	if exchangeRate.Valid {
		e.ExchangeRate = &exchangeRate.Decimal
	}
	if convertedAmount.Valid {
		e.ConvertedAmount = &convertedAmount.Decimal
	}
	if memo.Valid {
		e.Memo = &memo.String
	}

	return &e, nil
}

// marshalTagIDs encodes the tag id list for the JSONB column. A nil list is
// stored as an empty array, never as SQL NULL.
func marshalTagIDs(ids []uuid.UUID) ([]byte, error) {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return json.Marshal(ids)
}
