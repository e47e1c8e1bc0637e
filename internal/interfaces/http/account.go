package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"forge/internal/domain/account"
)

type AccountHandler struct {
	service *account.Service
}

func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

type CreateAccountRequest struct {
	AccountTypeID string  `json:"accountTypeId"`
	Name          string  `json:"name"`
	AccountCode   *string `json:"accountCode,omitempty"`
	Description   *string `json:"description,omitempty"`
	CurrencyCode  string  `json:"currencyCode"`
}

type UpdateAccountRequest struct {
	AccountTypeID *string `json:"accountTypeId,omitempty"`
	Name          *string `json:"name,omitempty"`
	AccountCode   *string `json:"accountCode,omitempty"`
	Description   *string `json:"description,omitempty"`
	CurrencyCode  *string `json:"currencyCode,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

type AccountResponse struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenantId"`
	AccountTypeID string    `json:"accountTypeId"`
	Name          string    `json:"name"`
	AccountCode   *string   `json:"accountCode,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CurrencyCode  string    `json:"currencyCode"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID.String(),
		TenantID:      a.TenantID.String(),
		AccountTypeID: a.AccountTypeID.String(),
		Name:          a.Name,
		AccountCode:   a.AccountCode,
		Description:   a.Description,
		CurrencyCode:  a.CurrencyCode,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPatch, http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDeactivate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *AccountHandler) handleList(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	accounts, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		response = append(response, toAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *AccountHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	a, err := h.service.Get(r.Context(), id, tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(a))
}

func (h *AccountHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := account.CreateParams{
		Name:         req.Name,
		AccountCode:  req.AccountCode,
		Description:  req.Description,
		CurrencyCode: req.CurrencyCode,
	}
	typeID, parseErr := uuid.Parse(req.AccountTypeID)
	if parseErr != nil {
		writeError(w, invalidUUID(req.AccountTypeID))
		return
	}
	params.AccountTypeID = typeID
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.service.Create(r.Context(), tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(a))
}

func (h *AccountHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actorID, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := account.UpdateParams{
		Name:         req.Name,
		AccountCode:  req.AccountCode,
		Description:  req.Description,
		CurrencyCode: req.CurrencyCode,
		IsActive:     req.IsActive,
	}
	if req.AccountTypeID != nil {
		typeID, parseErr := uuid.Parse(*req.AccountTypeID)
		if parseErr != nil {
			writeError(w, invalidUUID(*req.AccountTypeID))
			return
		}
		params.AccountTypeID = &typeID
	}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.service.Update(r.Context(), id, tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(a))
}

func (h *AccountHandler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	actorID, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Deactivate(r.Context(), id, tenantID, actorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
