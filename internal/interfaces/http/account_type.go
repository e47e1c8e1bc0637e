package http

import (
	"net/http"
	"time"

	"forge/internal/domain/accounttype"
	"forge/internal/shared/middleware"
)

type AccountTypeHandler struct {
	repo accounttype.Repository
}

func NewAccountTypeHandler(repo accounttype.Repository) *AccountTypeHandler {
	return &AccountTypeHandler{repo: repo}
}

type CreateAccountTypeRequest struct {
	Name          string `json:"name"`
	NormalBalance string `json:"normalBalance"`
}

type UpdateAccountTypeRequest struct {
	Name          *string `json:"name,omitempty"`
	NormalBalance *string `json:"normalBalance,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

type AccountTypeResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	NormalBalance string    `json:"normalBalance"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toAccountTypeResponse(t *accounttype.AccountType) AccountTypeResponse {
	return AccountTypeResponse{
		ID:            t.ID.String(),
		Name:          t.Name,
		NormalBalance: string(t.NormalBalance),
		IsActive:      t.IsActive,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (h *AccountTypeHandler) HandleAccountTypes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *AccountTypeHandler) HandleAccountTypeByID(w http.ResponseWriter, r *http.Request) {
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

func (h *AccountTypeHandler) handleList(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]AccountTypeResponse, 0, len(types))
	for _, t := range types {
		response = append(response, toAccountTypeResponse(t))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *AccountTypeHandler) handleGet(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, toAccountTypeResponse(t))
}

func (h *AccountTypeHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	var req CreateAccountTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := accounttype.CreateParams{
		Name:          req.Name,
		NormalBalance: accounttype.NormalBalance(req.NormalBalance),
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
	writeJSON(w, http.StatusCreated, toAccountTypeResponse(t))
}

func (h *AccountTypeHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateAccountTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := accounttype.UpdateParams{
		Name:     req.Name,
		IsActive: req.IsActive,
	}
	if req.NormalBalance != nil {
		nb := accounttype.NormalBalance(*req.NormalBalance)
		params.NormalBalance = &nb
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
	writeJSON(w, http.StatusOK, toAccountTypeResponse(t))
}

func (h *AccountTypeHandler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
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
