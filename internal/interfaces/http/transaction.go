package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"forge/internal/domain/transaction"
)

type TransactionHandler struct {
	service *transaction.Service
}

func NewTransactionHandler(service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type CreateJournalEntryRequest struct {
	AccountID       string           `json:"accountId"`
	EntryType       string           `json:"entryType"`
	Amount          decimal.Decimal  `json:"amount"`
	CurrencyCode    string           `json:"currencyCode"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
	Memo            *string          `json:"memo,omitempty"`
}

type CreateTransactionRequest struct {
	TransactionDate    time.Time                   `json:"transactionDate"`
	Description        string                      `json:"description"`
	Type               string                      `json:"type"`
	CategoryID         *string                     `json:"categoryId,omitempty"`
	TagIDs             []string                    `json:"tagIds,omitempty"`
	Amount             decimal.Decimal             `json:"amount"`
	CurrencyCode       string                      `json:"currencyCode"`
	IsReconciled       *bool                       `json:"isReconciled,omitempty"`
	ReconciliationDate *time.Time                  `json:"reconciliationDate,omitempty"`
	Notes              *string                     `json:"notes,omitempty"`
	SourceDocumentURL  *string                     `json:"sourceDocumentUrl,omitempty"`
	JournalEntries     []CreateJournalEntryRequest `json:"journalEntries"`
}

type UpdateTransactionRequest struct {
	TransactionDate    *time.Time       `json:"transactionDate,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Type               *string          `json:"type,omitempty"`
	CategoryID         *string          `json:"categoryId,omitempty"`
	TagIDs             []string         `json:"tagIds,omitempty"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode       *string          `json:"currencyCode,omitempty"`
	IsReconciled       *bool            `json:"isReconciled,omitempty"`
	ReconciliationDate *time.Time       `json:"reconciliationDate,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	SourceDocumentURL  *string          `json:"sourceDocumentUrl,omitempty"`
}

type TransactionResponse struct {
	ID                 string          `json:"id"`
	TenantID           string          `json:"tenantId"`
	TransactionDate    time.Time       `json:"transactionDate"`
	Description        string          `json:"description"`
	Type               string          `json:"type"`
	CategoryID         *string         `json:"categoryId,omitempty"`
	TagIDs             []string        `json:"tagIds"`
	Amount             decimal.Decimal `json:"amount"`
	CurrencyCode       string          `json:"currencyCode"`
	IsReconciled       bool            `json:"isReconciled"`
	ReconciliationDate *time.Time      `json:"reconciliationDate,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	SourceDocumentURL  *string         `json:"sourceDocumentUrl,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type JournalEntryResponse struct {
	ID              string           `json:"id"`
	TransactionID   string           `json:"transactionId"`
	AccountID       string           `json:"accountId"`
	EntryType       string           `json:"entryType"`
	Amount          decimal.Decimal  `json:"amount"`
	CurrencyCode    string           `json:"currencyCode"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
	Memo            *string          `json:"memo,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func toTransactionResponse(tx *transaction.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                 tx.ID.String(),
		TenantID:           tx.TenantID.String(),
		TransactionDate:    tx.TransactionDate,
		Description:        tx.Description,
		Type:               string(tx.Type),
		TagIDs:             make([]string, 0, len(tx.TagIDs)),
		Amount:             tx.Amount,
		CurrencyCode:       tx.CurrencyCode,
		IsReconciled:       tx.IsReconciled,
		ReconciliationDate: tx.ReconciliationDate,
		Notes:              tx.Notes,
		SourceDocumentURL:  tx.SourceDocumentURL,
		CreatedAt:          tx.CreatedAt,
		UpdatedAt:          tx.UpdatedAt,
	}
	if tx.CategoryID != nil {
		id := tx.CategoryID.String()
		resp.CategoryID = &id
	}
	for _, tagID := range tx.TagIDs {
		resp.TagIDs = append(resp.TagIDs, tagID.String())
	}
	return resp
}

func toJournalEntryResponse(e *transaction.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:              e.ID.String(),
		TransactionID:   e.TransactionID.String(),
		AccountID:       e.AccountID.String(),
		EntryType:       string(e.EntryType),
		Amount:          e.Amount,
		CurrencyCode:    e.CurrencyCode,
		ExchangeRate:    e.ExchangeRate,
		ConvertedAmount: e.ConvertedAmount,
		Memo:            e.Memo,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
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

// HandleTransactionEntries lists the journal entries of one transaction.
func (h *TransactionHandler) HandleTransactionEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

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

	entries, err := h.service.ListEntries(r.Context(), id, tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, toJournalEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, response)
}

// HandleJournalEntryByID fetches a single journal entry.
func (h *TransactionHandler) HandleJournalEntryByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

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

	e, err := h.service.GetEntry(r.Context(), id, tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournalEntryResponse(e))
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	transactions, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		response = append(response, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *TransactionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
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

	tx, err := h.service.Get(r.Context(), id, tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := transaction.CreateParams{
		TransactionDate:    req.TransactionDate,
		Description:        req.Description,
		Type:               transaction.Type(req.Type),
		Amount:             req.Amount,
		CurrencyCode:       req.CurrencyCode,
		IsReconciled:       req.IsReconciled,
		ReconciliationDate: req.ReconciliationDate,
		Notes:              req.Notes,
		SourceDocumentURL:  req.SourceDocumentURL,
	}
	if req.CategoryID != nil {
		categoryID, parseErr := uuid.Parse(*req.CategoryID)
		if parseErr != nil {
			writeError(w, invalidUUID(*req.CategoryID))
			return
		}
		params.CategoryID = &categoryID
	}
	for _, raw := range req.TagIDs {
		tagID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			writeError(w, invalidUUID(raw))
			return
		}
		params.TagIDs = append(params.TagIDs, tagID)
	}
	for _, entry := range req.JournalEntries {
		accountID, parseErr := uuid.Parse(entry.AccountID)
		if parseErr != nil {
			writeError(w, invalidUUID(entry.AccountID))
			return
		}
		params.JournalEntries = append(params.JournalEntries, transaction.CreateEntryParams{
			AccountID:       accountID,
			EntryType:       transaction.EntryType(entry.EntryType),
			Amount:          entry.Amount,
			CurrencyCode:    entry.CurrencyCode,
			ExchangeRate:    entry.ExchangeRate,
			ConvertedAmount: entry.ConvertedAmount,
			Memo:            entry.Memo,
		})
	}

	tx, err := h.service.Create(r.Context(), tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := transaction.UpdateParams{
		TransactionDate:    req.TransactionDate,
		Description:        req.Description,
		Amount:             req.Amount,
		CurrencyCode:       req.CurrencyCode,
		IsReconciled:       req.IsReconciled,
		ReconciliationDate: req.ReconciliationDate,
		Notes:              req.Notes,
		SourceDocumentURL:  req.SourceDocumentURL,
	}
	if req.Type != nil {
		txType := transaction.Type(*req.Type)
		params.Type = &txType
	}
	if req.CategoryID != nil {
		categoryID, parseErr := uuid.Parse(*req.CategoryID)
		if parseErr != nil {
			writeError(w, invalidUUID(*req.CategoryID))
			return
		}
		params.CategoryID = &categoryID
	}
	if req.TagIDs != nil {
		params.TagIDs = make([]uuid.UUID, 0, len(req.TagIDs))
		for _, raw := range req.TagIDs {
			tagID, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				writeError(w, invalidUUID(raw))
				return
			}
			params.TagIDs = append(params.TagIDs, tagID)
		}
	}

	tx, err := h.service.Update(r.Context(), id, tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Delete(r.Context(), id, tenantID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
