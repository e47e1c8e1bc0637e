package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"forge/internal/domain/category"
	"forge/internal/domain/transaction"
	"forge/internal/shared/apperror"
)

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	ListByTenantFunc func(ctx context.Context, tenantID uuid.UUID) ([]*transaction.Transaction, error)
	GetByIDFunc      func(ctx context.Context, id, tenantID uuid.UUID) (*transaction.Transaction, error)
	CreateFunc       func(ctx context.Context, tenantID, actorID uuid.UUID, params transaction.CreateParams) (*transaction.Transaction, error)
	UpdateFunc       func(ctx context.Context, id, tenantID, actorID uuid.UUID, params transaction.UpdateParams) (*transaction.Transaction, error)
	DeleteFunc       func(ctx context.Context, id, tenantID uuid.UUID) error
	ListEntriesFunc  func(ctx context.Context, transactionID, tenantID uuid.UUID) ([]*transaction.JournalEntry, error)
	GetEntryFunc     func(ctx context.Context, entryID, tenantID uuid.UUID) (*transaction.JournalEntry, error)
}

func (m *MockTransactionRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*transaction.Transaction, error) {
	if m.ListByTenantFunc != nil {
		return m.ListByTenantFunc(ctx, tenantID)
	}
	return nil, nil
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, tenantID)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Create(ctx context.Context, tenantID, actorID uuid.UUID, params transaction.CreateParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tenantID, actorID, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params transaction.UpdateParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, tenantID, actorID, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, tenantID)
	}
	return nil
}

func (m *MockTransactionRepo) ListEntries(ctx context.Context, transactionID, tenantID uuid.UUID) ([]*transaction.JournalEntry, error) {
	if m.ListEntriesFunc != nil {
		return m.ListEntriesFunc(ctx, transactionID, tenantID)
	}
	return nil, nil
}

func (m *MockTransactionRepo) GetEntryByID(ctx context.Context, entryID, tenantID uuid.UUID) (*transaction.JournalEntry, error) {
	if m.GetEntryFunc != nil {
		return m.GetEntryFunc(ctx, entryID, tenantID)
	}
	return nil, nil
}

// MockCategoryRepo implements category.Repository for testing
type MockCategoryRepo struct {
	ExistsActiveFunc func(ctx context.Context, id, tenantID uuid.UUID) (bool, error)
	GetByIDFunc      func(ctx context.Context, id, tenantID uuid.UUID) (*category.Category, error)
}

func (m *MockCategoryRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*category.Category, error) {
	return nil, nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, tenantID)
	}
	return nil, apperror.NotFound("category with ID %s not found", id)
}

func (m *MockCategoryRepo) ExistsActive(ctx context.Context, id, tenantID uuid.UUID) (bool, error) {
	if m.ExistsActiveFunc != nil {
		return m.ExistsActiveFunc(ctx, id, tenantID)
	}
	return true, nil
}

func (m *MockCategoryRepo) Create(ctx context.Context, tenantID, actorID uuid.UUID, params category.CreateParams) (*category.Category, error) {
	return nil, nil
}

func (m *MockCategoryRepo) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params category.UpdateParams) (*category.Category, error) {
	return nil, nil
}

func (m *MockCategoryRepo) Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	return nil
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	posted  []transaction.PostedEvent
	deleted []transaction.DeletedEvent
}

func (p *capturePublisher) TransactionPosted(ctx context.Context, event transaction.PostedEvent) error {
	p.posted = append(p.posted, event)
	return nil
}

func (p *capturePublisher) TransactionDeleted(ctx context.Context, event transaction.DeletedEvent) error {
	p.deleted = append(p.deleted, event)
	return nil
}

func balancedCreateBody(debitAccount, creditAccount uuid.UUID) string {
	return fmt.Sprintf(`{
		"transactionDate": "2026-03-15T00:00:00Z",
		"description": "Office supplies",
		"type": "EXPENSE",
		"amount": "125.50",
		"currencyCode": "USD",
		"journalEntries": [
			{"accountId": "%s", "entryType": "DEBIT", "amount": "125.50", "currencyCode": "USD"},
			{"accountId": "%s", "entryType": "CREDIT", "amount": "125.50", "currencyCode": "USD"}
		]
	}`, debitAccount, creditAccount)
}

func TestHandleTransactions_Create(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()
	debitAccount := uuid.New()
	creditAccount := uuid.New()

	repo := &MockTransactionRepo{
		CreateFunc: func(ctx context.Context, gotTenant, gotActor uuid.UUID, params transaction.CreateParams) (*transaction.Transaction, error) {
			if gotTenant != tenantID || gotActor != actorID {
				t.Errorf("identity mismatch: tenant=%s actor=%s", gotTenant, gotActor)
			}
			if len(params.JournalEntries) != 2 {
				t.Errorf("entries = %d, want 2", len(params.JournalEntries))
			}
			return &transaction.Transaction{
				ID:           uuid.New(),
				TenantID:     gotTenant,
				Description:  params.Description,
				Type:         params.Type,
				Amount:       params.Amount,
				CurrencyCode: params.CurrencyCode,
			}, nil
		},
	}
	publisher := &capturePublisher{}
	service := transaction.NewService(repo, &MockCategoryRepo{}, publisher)
	handler := NewTransactionHandler(service)

	req, _ := http.NewRequest(http.MethodPost, "/api/transactions",
		bytes.NewBufferString(balancedCreateBody(debitAccount, creditAccount)))
	req = withIdentity(req, actorID, tenantID)

	rr := httptest.NewRecorder()
	handler.HandleTransactions(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if len(publisher.posted) != 1 {
		t.Errorf("posted events = %d, want 1", len(publisher.posted))
	}
	if publisher.posted[0].EntryCount != 2 {
		t.Errorf("event entry count = %d, want 2", publisher.posted[0].EntryCount)
	}
}

func TestHandleTransactions_CreateUnbalanced(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()

	body := fmt.Sprintf(`{
		"transactionDate": "2026-03-15T00:00:00Z",
		"description": "Lopsided",
		"type": "EXPENSE",
		"amount": "100.00",
		"currencyCode": "USD",
		"journalEntries": [
			{"accountId": "%s", "entryType": "DEBIT", "amount": "100.00", "currencyCode": "USD"},
			{"accountId": "%s", "entryType": "CREDIT", "amount": "90.00", "currencyCode": "USD"}
		]
	}`, uuid.New(), uuid.New())

	repoCalled := false
	repo := &MockTransactionRepo{
		CreateFunc: func(ctx context.Context, tenantID, actorID uuid.UUID, params transaction.CreateParams) (*transaction.Transaction, error) {
			repoCalled = true
			return nil, nil
		},
	}
	service := transaction.NewService(repo, &MockCategoryRepo{}, nil)
	handler := NewTransactionHandler(service)

	req, _ := http.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString(body))
	req = withIdentity(req, actorID, tenantID)

	rr := httptest.NewRecorder()
	handler.HandleTransactions(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if repoCalled {
		t.Error("repository Create was called for an unbalanced transaction")
	}
	if !strings.Contains(rr.Body.String(), "unbalanced") {
		t.Errorf("body = %s, want unbalanced message", rr.Body.String())
	}
}

func TestHandleTransactions_CreateAdjustmentSkipsBalance(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()

	body := fmt.Sprintf(`{
		"transactionDate": "2026-01-01T00:00:00Z",
		"description": "Opening correction",
		"type": "ADJUSTMENT",
		"amount": "50.00",
		"currencyCode": "USD",
		"journalEntries": [
			{"accountId": "%s", "entryType": "DEBIT", "amount": "50.00", "currencyCode": "USD"}
		]
	}`, uuid.New())

	repo := &MockTransactionRepo{
		CreateFunc: func(ctx context.Context, tenantID, actorID uuid.UUID, params transaction.CreateParams) (*transaction.Transaction, error) {
			return &transaction.Transaction{
				ID:           uuid.New(),
				TenantID:     tenantID,
				Type:         params.Type,
				Amount:       params.Amount,
				CurrencyCode: params.CurrencyCode,
			}, nil
		},
	}
	service := transaction.NewService(repo, &MockCategoryRepo{}, nil)
	handler := NewTransactionHandler(service)

	req, _ := http.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString(body))
	req = withIdentity(req, actorID, tenantID)

	rr := httptest.NewRecorder()
	handler.HandleTransactions(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
}

func TestHandleTransactions_CreateInvalidCategory(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()
	categoryID := uuid.New()

	body := fmt.Sprintf(`{
		"transactionDate": "2026-03-15T00:00:00Z",
		"description": "Office supplies",
		"type": "EXPENSE",
		"categoryId": "%s",
		"amount": "125.50",
		"currencyCode": "USD",
		"journalEntries": [
			{"accountId": "%s", "entryType": "DEBIT", "amount": "125.50", "currencyCode": "USD"},
			{"accountId": "%s", "entryType": "CREDIT", "amount": "125.50", "currencyCode": "USD"}
		]
	}`, categoryID, uuid.New(), uuid.New())

	categoryRepo := &MockCategoryRepo{
		ExistsActiveFunc: func(ctx context.Context, id, tenantID uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	service := transaction.NewService(&MockTransactionRepo{}, categoryRepo, nil)
	handler := NewTransactionHandler(service)

	req, _ := http.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBufferString(body))
	req = withIdentity(req, actorID, tenantID)

	rr := httptest.NewRecorder()
	handler.HandleTransactions(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), categoryID.String()) {
		t.Errorf("body = %s, want message naming category %s", rr.Body.String(), categoryID)
	}
}

func TestHandleTransactionByID_Delete(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()
	txID := uuid.New()

	tests := []struct {
		name           string
		deleteErr      error
		expectedStatus int
		expectedEvents int
	}{
		{"Success", nil, http.StatusNoContent, 1},
		{"Not Found", apperror.NotFound("transaction with ID %s not found", txID), http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockTransactionRepo{
				DeleteFunc: func(ctx context.Context, id, tenantID uuid.UUID) error {
					return tt.deleteErr
				},
			}
			publisher := &capturePublisher{}
			service := transaction.NewService(repo, &MockCategoryRepo{}, publisher)
			handler := NewTransactionHandler(service)

			req, _ := http.NewRequest(http.MethodDelete, "/api/transactions/"+txID.String(), nil)
			req.SetPathValue("id", txID.String())
			req = withIdentity(req, actorID, tenantID)

			rr := httptest.NewRecorder()
			handler.HandleTransactionByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if len(publisher.deleted) != tt.expectedEvents {
				t.Errorf("deleted events = %d, want %d", len(publisher.deleted), tt.expectedEvents)
			}
		})
	}
}

func TestHandleTransactionEntries_List(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()
	txID := uuid.New()

	repo := &MockTransactionRepo{
		ListEntriesFunc: func(ctx context.Context, transactionID, gotTenant uuid.UUID) ([]*transaction.JournalEntry, error) {
			if transactionID != txID {
				t.Errorf("transaction = %s, want %s", transactionID, txID)
			}
			return []*transaction.JournalEntry{
				{ID: uuid.New(), TransactionID: txID, EntryType: transaction.EntryTypeDebit, Amount: decimal.RequireFromString("10.00"), CurrencyCode: "USD"},
				{ID: uuid.New(), TransactionID: txID, EntryType: transaction.EntryTypeCredit, Amount: decimal.RequireFromString("10.00"), CurrencyCode: "USD"},
			}, nil
		},
	}
	service := transaction.NewService(repo, &MockCategoryRepo{}, nil)
	handler := NewTransactionHandler(service)

	req, _ := http.NewRequest(http.MethodGet, "/api/transactions/"+txID.String()+"/journal-entries", nil)
	req.SetPathValue("id", txID.String())
	req = withIdentity(req, actorID, tenantID)

	rr := httptest.NewRecorder()
	handler.HandleTransactionEntries(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var got []JournalEntryResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}
