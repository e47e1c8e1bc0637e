package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"forge/internal/domain/budget"
)

type BudgetHandler struct {
	service *budget.Service
}

func NewBudgetHandler(service *budget.Service) *BudgetHandler {
	return &BudgetHandler{service: service}
}

type CreateBudgetRequest struct {
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	CurrencyCode string    `json:"currencyCode"`
}

type UpdateBudgetRequest struct {
	Name         *string    `json:"name,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	CurrencyCode *string    `json:"currencyCode,omitempty"`
	IsActive     *bool      `json:"isActive,omitempty"`
}

type CreateLineItemRequest struct {
	CategoryID     *string         `json:"categoryId,omitempty"`
	AccountID      *string         `json:"accountId,omitempty"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
}

type UpdateLineItemRequest struct {
	CategoryID     *string          `json:"categoryId,omitempty"`
	AccountID      *string          `json:"accountId,omitempty"`
	BudgetedAmount *decimal.Decimal `json:"budgetedAmount,omitempty"`
	IsActive       *bool            `json:"isActive,omitempty"`
}

type BudgetResponse struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	CurrencyCode string    `json:"currencyCode"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type LineItemResponse struct {
	ID             string          `json:"id"`
	BudgetID       string          `json:"budgetId"`
	CategoryID     *string         `json:"categoryId,omitempty"`
	AccountID      *string         `json:"accountId,omitempty"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func toBudgetResponse(b *budget.Budget) BudgetResponse {
	return BudgetResponse{
		ID:           b.ID.String(),
		TenantID:     b.TenantID.String(),
		Name:         b.Name,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		CurrencyCode: b.CurrencyCode,
		IsActive:     b.IsActive,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toLineItemResponse(li *budget.LineItem) LineItemResponse {
	resp := LineItemResponse{
		ID:             li.ID.String(),
		BudgetID:       li.BudgetID.String(),
		BudgetedAmount: li.BudgetedAmount,
		IsActive:       li.IsActive,
		CreatedAt:      li.CreatedAt,
		UpdatedAt:      li.UpdatedAt,
	}
	if li.CategoryID != nil {
		id := li.CategoryID.String()
		resp.CategoryID = &id
	}
	if li.AccountID != nil {
		id := li.AccountID.String()
		resp.AccountID = &id
	}
	return resp
}

func (h *BudgetHandler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *BudgetHandler) HandleBudgetByID(w http.ResponseWriter, r *http.Request) {
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

func (h *BudgetHandler) HandleBudgetLineItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListLineItems(w, r)
	case http.MethodPost:
		h.handleCreateLineItem(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *BudgetHandler) HandleLineItemByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetLineItem(w, r)
	case http.MethodPatch, http.MethodPut:
		h.handleUpdateLineItem(w, r)
	case http.MethodDelete:
		h.handleDeactivateLineItem(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *BudgetHandler) handleList(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	budgets, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		response = append(response, toBudgetResponse(b))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *BudgetHandler) handleGet(w http.ResponseWriter, r *http.Request) {
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

	b, err := h.service.Get(r.Context(), id, tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (h *BudgetHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req CreateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := budget.CreateParams{
		Name:         req.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CurrencyCode: req.CurrencyCode,
	}

	b, err := h.service.Create(r.Context(), tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetResponse(b))
}

func (h *BudgetHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := budget.UpdateParams{
		Name:         req.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CurrencyCode: req.CurrencyCode,
		IsActive:     req.IsActive,
	}

	b, err := h.service.Update(r.Context(), id, tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (h *BudgetHandler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
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

func (h *BudgetHandler) handleListLineItems(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	budgetID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.service.ListLineItems(r.Context(), budgetID, tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]LineItemResponse, 0, len(items))
	for _, li := range items {
		response = append(response, toLineItemResponse(li))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *BudgetHandler) handleGetLineItem(w http.ResponseWriter, r *http.Request) {
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

	li, err := h.service.GetLineItem(r.Context(), id, tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLineItemResponse(li))
}

func (h *BudgetHandler) handleCreateLineItem(w http.ResponseWriter, r *http.Request) {
	actorID, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	budgetID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req CreateLineItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := budget.CreateLineItemParams{BudgetedAmount: req.BudgetedAmount}
	if req.CategoryID != nil {
		categoryID, parseErr := uuid.Parse(*req.CategoryID)
		if parseErr != nil {
			writeError(w, invalidUUID(*req.CategoryID))
			return
		}
		params.CategoryID = &categoryID
	}
	if req.AccountID != nil {
		accountID, parseErr := uuid.Parse(*req.AccountID)
		if parseErr != nil {
			writeError(w, invalidUUID(*req.AccountID))
			return
		}
		params.AccountID = &accountID
	}

	li, err := h.service.CreateLineItem(r.Context(), budgetID, tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLineItemResponse(li))
}

func (h *BudgetHandler) handleUpdateLineItem(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateLineItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := budget.UpdateLineItemParams{
		BudgetedAmount: req.BudgetedAmount,
		IsActive:       req.IsActive,
	}
	if req.CategoryID != nil {
		categoryID, parseErr := uuid.Parse(*req.CategoryID)
		if parseErr != nil {
			writeError(w, invalidUUID(*req.CategoryID))
			return
		}
		params.CategoryID = &categoryID
	}
	if req.AccountID != nil {
		accountID, parseErr := uuid.Parse(*req.AccountID)
		if parseErr != nil {
			writeError(w, invalidUUID(*req.AccountID))
			return
		}
		params.AccountID = &accountID
	}

	li, err := h.service.UpdateLineItem(r.Context(), id, tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLineItemResponse(li))
}

func (h *BudgetHandler) handleDeactivateLineItem(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeactivateLineItem(r.Context(), id, tenantID, actorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
