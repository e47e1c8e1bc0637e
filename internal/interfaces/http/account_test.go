package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"forge/internal/domain/account"
	"forge/internal/domain/accounttype"
	"forge/internal/shared/apperror"
)

// MockAccountRepo implements account.Repository for testing
type MockAccountRepo struct {
	ListByTenantFunc func(ctx context.Context, tenantID uuid.UUID) ([]*account.Account, error)
	GetByIDFunc      func(ctx context.Context, id, tenantID uuid.UUID) (*account.Account, error)
	ExistsActiveFunc func(ctx context.Context, id, tenantID uuid.UUID) (bool, error)
	CreateFunc       func(ctx context.Context, tenantID, actorID uuid.UUID, params account.CreateParams) (*account.Account, error)
	UpdateFunc       func(ctx context.Context, id, tenantID, actorID uuid.UUID, params account.UpdateParams) (*account.Account, error)
	DeactivateFunc   func(ctx context.Context, id, tenantID, actorID uuid.UUID) error
}

func (m *MockAccountRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*account.Account, error) {
	if m.ListByTenantFunc != nil {
		return m.ListByTenantFunc(ctx, tenantID)
	}
	return nil, nil
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, tenantID)
	}
	return nil, nil
}

func (m *MockAccountRepo) ExistsActive(ctx context.Context, id, tenantID uuid.UUID) (bool, error) {
	if m.ExistsActiveFunc != nil {
		return m.ExistsActiveFunc(ctx, id, tenantID)
	}
	return true, nil
}

func (m *MockAccountRepo) Create(ctx context.Context, tenantID, actorID uuid.UUID, params account.CreateParams) (*account.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tenantID, actorID, params)
	}
	return nil, nil
}

func (m *MockAccountRepo) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params account.UpdateParams) (*account.Account, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, tenantID, actorID, params)
	}
	return nil, nil
}

func (m *MockAccountRepo) Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id, tenantID, actorID)
	}
	return nil
}

// MockAccountTypeRepo implements accounttype.Repository for testing
type MockAccountTypeRepo struct {
	ExistsActiveFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockAccountTypeRepo) List(ctx context.Context) ([]*accounttype.AccountType, error) {
	return nil, nil
}

func (m *MockAccountTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*accounttype.AccountType, error) {
	return nil, apperror.NotFound("account type with ID %s not found", id)
}

func (m *MockAccountTypeRepo) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsActiveFunc != nil {
		return m.ExistsActiveFunc(ctx, id)
	}
	return true, nil
}

func (m *MockAccountTypeRepo) Create(ctx context.Context, actorID uuid.UUID, params accounttype.CreateParams) (*accounttype.AccountType, error) {
	return nil, nil
}

func (m *MockAccountTypeRepo) Update(ctx context.Context, id, actorID uuid.UUID, params accounttype.UpdateParams) (*accounttype.AccountType, error) {
	return nil, nil
}

func (m *MockAccountTypeRepo) Deactivate(ctx context.Context, id, actorID uuid.UUID) error {
	return nil
}

func TestHandleAccounts_Create(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()
	typeID := uuid.New()

	tests := []struct {
		name           string
		body           string
		typeRepo       func() *MockAccountTypeRepo
		expectedStatus int
		wantInBody     string
	}{
		{
			name: "Success",
			body: fmt.Sprintf(`{"accountTypeId": "%s", "name": "Operating Cash", "currencyCode": "USD"}`, typeID),
			typeRepo: func() *MockAccountTypeRepo {
				return &MockAccountTypeRepo{}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Inactive Account Type",
			body: fmt.Sprintf(`{"accountTypeId": "%s", "name": "Operating Cash", "currencyCode": "USD"}`, typeID),
			typeRepo: func() *MockAccountTypeRepo {
				return &MockAccountTypeRepo{
					ExistsActiveFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
						return false, nil
					},
				}
			},
			expectedStatus: http.StatusBadRequest,
			wantInBody:     typeID.String(),
		},
		{
			name:           "Bad Account Type UUID",
			body:           `{"accountTypeId": "not-a-uuid", "name": "Operating Cash", "currencyCode": "USD"}`,
			typeRepo:       func() *MockAccountTypeRepo { return &MockAccountTypeRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Currency",
			body:           fmt.Sprintf(`{"accountTypeId": "%s", "name": "Operating Cash", "currencyCode": "US"}`, typeID),
			typeRepo:       func() *MockAccountTypeRepo { return &MockAccountTypeRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockAccountRepo{
				CreateFunc: func(ctx context.Context, tenantID, actorID uuid.UUID, params account.CreateParams) (*account.Account, error) {
					return &account.Account{
						ID:            uuid.New(),
						TenantID:      tenantID,
						AccountTypeID: params.AccountTypeID,
						Name:          params.Name,
						CurrencyCode:  params.CurrencyCode,
						IsActive:      true,
					}, nil
				},
			}
			service := account.NewService(repo, tt.typeRepo())
			handler := NewAccountHandler(service)

			req, _ := http.NewRequest(http.MethodPost, "/api/accounts", bytes.NewBufferString(tt.body))
			req = withIdentity(req, actorID, tenantID)

			rr := httptest.NewRecorder()
			handler.HandleAccounts(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.wantInBody != "" && !strings.Contains(rr.Body.String(), tt.wantInBody) {
				t.Errorf("body = %s, want to contain %s", rr.Body.String(), tt.wantInBody)
			}
		})
	}
}

func TestHandleAccountByID_Get(t *testing.T) {
	actorID := uuid.New()
	tenantID := uuid.New()
	accountID := uuid.New()

	tests := []struct {
		name           string
		repo           func() *MockAccountRepo
		expectedStatus int
	}{
		{
			name: "Success",
			repo: func() *MockAccountRepo {
				return &MockAccountRepo{
					GetByIDFunc: func(ctx context.Context, id, gotTenant uuid.UUID) (*account.Account, error) {
						if gotTenant != tenantID {
							t.Errorf("tenant = %s, want %s", gotTenant, tenantID)
						}
						return &account.Account{ID: id, TenantID: gotTenant, Name: "Operating Cash", CurrencyCode: "USD"}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not Found",
			repo: func() *MockAccountRepo {
				return &MockAccountRepo{
					GetByIDFunc: func(ctx context.Context, id, tenantID uuid.UUID) (*account.Account, error) {
						return nil, apperror.NotFound("account with ID %s not found", id)
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := account.NewService(tt.repo(), &MockAccountTypeRepo{})
			handler := NewAccountHandler(service)

			req, _ := http.NewRequest(http.MethodGet, "/api/accounts/"+accountID.String(), nil)
			req.SetPathValue("id", accountID.String())
			req = withIdentity(req, actorID, tenantID)

			rr := httptest.NewRecorder()
			handler.HandleAccountByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}
