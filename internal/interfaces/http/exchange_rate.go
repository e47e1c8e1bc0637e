package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"forge/internal/domain/currency"
	"forge/internal/domain/exchangerate"
	"forge/internal/shared/apperror"
)

type ExchangeRateHandler struct {
	repo exchangerate.Repository
}

func NewExchangeRateHandler(repo exchangerate.Repository) *ExchangeRateHandler {
	return &ExchangeRateHandler{repo: repo}
}

type CreateExchangeRateRequest struct {
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	RateDate           time.Time       `json:"rateDate"`
	Source             *string         `json:"source,omitempty"`
	// SystemWide stores the rate without a tenant scope so every tenant can
	// fall back to it.
	SystemWide bool `json:"systemWide,omitempty"`
}

type UpdateExchangeRateRequest struct {
	Rate     *decimal.Decimal `json:"rate,omitempty"`
	RateDate *time.Time       `json:"rateDate,omitempty"`
	Source   *string          `json:"source,omitempty"`
}

type ExchangeRateResponse struct {
	ID                 string          `json:"id"`
	TenantID           *string         `json:"tenantId,omitempty"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	RateDate           time.Time       `json:"rateDate"`
	Source             *string         `json:"source,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func toExchangeRateResponse(rate *exchangerate.ExchangeRate) ExchangeRateResponse {
	resp := ExchangeRateResponse{
		ID:                 rate.ID.String(),
		BaseCurrencyCode:   rate.BaseCurrencyCode,
		TargetCurrencyCode: rate.TargetCurrencyCode,
		Rate:               rate.Rate,
		RateDate:           rate.RateDate,
		Source:             rate.Source,
		CreatedAt:          rate.CreatedAt,
		UpdatedAt:          rate.UpdatedAt,
	}
	if rate.TenantID != nil {
		id := rate.TenantID.String()
		resp.TenantID = &id
	}
	return resp
}

func (h *ExchangeRateHandler) HandleExchangeRates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *ExchangeRateHandler) HandleExchangeRateByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPatch, http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		methodNotAllowed(w)
	}
}

// HandleLatestRate resolves the most recent rate for a currency pair, given
// as ?base=USD&target=EUR. Tenant rates win over system-wide defaults.
func (h *ExchangeRateHandler) HandleLatestRate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	_, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	base := r.URL.Query().Get("base")
	target := r.URL.Query().Get("target")
	if !currency.IsValidCode(base) || !currency.IsValidCode(target) {
		writeError(w, apperror.Validation("base and target must be 3-letter ISO 4217 codes"))
		return
	}

	rate, err := h.repo.GetLatest(r.Context(), &tenantID, base, target)
	if apperror.KindOf(err) == apperror.KindNotFound {
		rate, err = h.repo.GetLatest(r.Context(), nil, base, target)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeRateResponse(rate))
}

func (h *ExchangeRateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	scope := &tenantID
	if r.URL.Query().Get("scope") == "system" {
		scope = nil
	}

	rates, err := h.repo.List(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]ExchangeRateResponse, 0, len(rates))
	for _, rate := range rates {
		response = append(response, toExchangeRateResponse(rate))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *ExchangeRateHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rate, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeRateResponse(rate))
}

func (h *ExchangeRateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req CreateExchangeRateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := exchangerate.CreateParams{
		BaseCurrencyCode:   req.BaseCurrencyCode,
		TargetCurrencyCode: req.TargetCurrencyCode,
		Rate:               req.Rate,
		RateDate:           req.RateDate,
		Source:             req.Source,
	}
	if !req.SystemWide {
		params.TenantID = &tenantID
	}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	rate, err := h.repo.Create(r.Context(), actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExchangeRateResponse(rate))
}

func (h *ExchangeRateHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateExchangeRateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := exchangerate.UpdateParams{Rate: req.Rate, RateDate: req.RateDate, Source: req.Source}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	rate, err := h.repo.Update(r.Context(), id, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeRateResponse(rate))
}

func (h *ExchangeRateHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
