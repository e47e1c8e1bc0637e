package http

import (
	"net/http"
	"time"

	"forge/internal/domain/tenant"
	"forge/internal/shared/middleware"
)

type TenantHandler struct {
	repo tenant.Repository
}

func NewTenantHandler(repo tenant.Repository) *TenantHandler {
	return &TenantHandler{repo: repo}
}

type CreateTenantRequest struct {
	Name               string  `json:"name"`
	Industry           *string `json:"industry,omitempty"`
	BaseCurrencyCode   string  `json:"baseCurrencyCode"`
	FiscalYearEndMonth int     `json:"fiscalYearEndMonth"`
}

type UpdateTenantRequest struct {
	Name               *string `json:"name,omitempty"`
	Industry           *string `json:"industry,omitempty"`
	BaseCurrencyCode   *string `json:"baseCurrencyCode,omitempty"`
	FiscalYearEndMonth *int    `json:"fiscalYearEndMonth,omitempty"`
	IsActive           *bool   `json:"isActive,omitempty"`
}

type TenantResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Industry           *string   `json:"industry,omitempty"`
	BaseCurrencyCode   string    `json:"baseCurrencyCode"`
	FiscalYearEndMonth int       `json:"fiscalYearEndMonth"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func toTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:                 t.ID.String(),
		Name:               t.Name,
		Industry:           t.Industry,
		BaseCurrencyCode:   t.BaseCurrencyCode,
		FiscalYearEndMonth: t.FiscalYearEndMonth,
		IsActive:           t.IsActive,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func (h *TenantHandler) HandleTenants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *TenantHandler) HandleTenantByID(w http.ResponseWriter, r *http.Request) {
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

func (h *TenantHandler) handleList(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		response = append(response, toTenantResponse(t))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *TenantHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTenantResponse(t))
}

func (h *TenantHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	var req CreateTenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := tenant.CreateParams{
		Name:               req.Name,
		Industry:           req.Industry,
		BaseCurrencyCode:   req.BaseCurrencyCode,
		FiscalYearEndMonth: req.FiscalYearEndMonth,
	}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	t, err := h.repo.Create(r.Context(), actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTenantResponse(t))
}

func (h *TenantHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateTenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := tenant.UpdateParams{
		Name:               req.Name,
		Industry:           req.Industry,
		BaseCurrencyCode:   req.BaseCurrencyCode,
		FiscalYearEndMonth: req.FiscalYearEndMonth,
		IsActive:           req.IsActive,
	}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	t, err := h.repo.Update(r.Context(), id, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTenantResponse(t))
}

func (h *TenantHandler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.Deactivate(r.Context(), id, actorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
