package http

import (
	"net/http"
	"time"

	"forge/internal/domain/currency"
	"forge/internal/shared/apperror"
	"forge/internal/shared/middleware"
)

type CurrencyHandler struct {
	repo currency.Repository
}

func NewCurrencyHandler(repo currency.Repository) *CurrencyHandler {
	return &CurrencyHandler{repo: repo}
}

type CreateCurrencyRequest struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol *string `json:"symbol,omitempty"`
}

type UpdateCurrencyRequest struct {
	Name     *string `json:"name,omitempty"`
	Symbol   *string `json:"symbol,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type CurrencyResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Symbol    *string   `json:"symbol,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCurrencyResponse(c *currency.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:      c.Code,
		Name:      c.Name,
		Symbol:    c.Symbol,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (h *CurrencyHandler) HandleCurrencies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *CurrencyHandler) HandleCurrencyByCode(w http.ResponseWriter, r *http.Request) {
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

func (h *CurrencyHandler) handleList(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]CurrencyResponse, 0, len(currencies))
	for _, c := range currencies {
		response = append(response, toCurrencyResponse(c))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *CurrencyHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !currency.IsValidCode(code) {
		writeError(w, apperror.Validation("'%s' is not a valid currency code", code))
		return
	}

	c, err := h.repo.GetByCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyResponse(c))
}

func (h *CurrencyHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	var req CreateCurrencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := currency.CreateParams{Code: req.Code, Name: req.Name, Symbol: req.Symbol}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.repo.Create(r.Context(), actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCurrencyResponse(c))
}

func (h *CurrencyHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	code := r.PathValue("code")
	if !currency.IsValidCode(code) {
		writeError(w, apperror.Validation("'%s' is not a valid currency code", code))
		return
	}

	var req UpdateCurrencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := currency.UpdateParams{Name: req.Name, Symbol: req.Symbol, IsActive: req.IsActive}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.repo.Update(r.Context(), code, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyResponse(c))
}

func (h *CurrencyHandler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	code := r.PathValue("code")
	if !currency.IsValidCode(code) {
		writeError(w, apperror.Validation("'%s' is not a valid currency code", code))
		return
	}

	if err := h.repo.Deactivate(r.Context(), code, actorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
