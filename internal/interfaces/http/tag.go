package http

import (
	"net/http"
	"time"

	"forge/internal/domain/tag"
)

type TagHandler struct {
	repo tag.Repository
}

func NewTagHandler(repo tag.Repository) *TagHandler {
	return &TagHandler{repo: repo}
}

type CreateTagRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpdateTagRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type TagResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTagResponse(t *tag.Tag) TagResponse {
	return TagResponse{
		ID:          t.ID.String(),
		TenantID:    t.TenantID.String(),
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (h *TagHandler) HandleTags(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *TagHandler) HandleTagByID(w http.ResponseWriter, r *http.Request) {
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

func (h *TagHandler) handleList(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	tags, err := h.repo.ListByTenant(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		response = append(response, toTagResponse(t))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *TagHandler) handleGet(w http.ResponseWriter, r *http.Request) {
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

	t, err := h.repo.GetByID(r.Context(), id, tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagResponse(t))
}

func (h *TagHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req CreateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := tag.CreateParams{Name: req.Name, Description: req.Description}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	t, err := h.repo.Create(r.Context(), tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTagResponse(t))
}

func (h *TagHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := tag.UpdateParams{Name: req.Name, Description: req.Description, IsActive: req.IsActive}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	t, err := h.repo.Update(r.Context(), id, tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagResponse(t))
}

func (h *TagHandler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
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

	if err := h.repo.Deactivate(r.Context(), id, tenantID, actorID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
