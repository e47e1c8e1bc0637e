package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"forge/internal/domain/category"
)

type CategoryHandler struct {
	service *category.Service
}

func NewCategoryHandler(service *category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type CreateCategoryRequest struct {
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	Type             string  `json:"type"`
	ParentCategoryID *string `json:"parentCategoryId,omitempty"`
}

type UpdateCategoryRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	Type             *string `json:"type,omitempty"`
	ParentCategoryID *string `json:"parentCategoryId,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
}

type CategoryResponse struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenantId"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	Type             string    `json:"type"`
	ParentCategoryID *string   `json:"parentCategoryId,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toCategoryResponse(c *category.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:          c.ID.String(),
		TenantID:    c.TenantID.String(),
		Name:        c.Name,
		Description: c.Description,
		Type:        string(c.Type),
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.ParentCategoryID != nil {
		parent := c.ParentCategoryID.String()
		resp.ParentCategoryID = &parent
	}
	return resp
}

func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
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

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	categories, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
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

	c, err := h.service.Get(r.Context(), id, tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, tenantID, ok := identity(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := category.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Type:        category.Type(req.Type),
	}
	if req.ParentCategoryID != nil {
		parentID, parseErr := uuid.Parse(*req.ParentCategoryID)
		if parseErr != nil {
			writeError(w, invalidUUID(*req.ParentCategoryID))
			return
		}
		params.ParentCategoryID = &parentID
	}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.service.Create(r.Context(), tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (h *CategoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := category.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.Type != nil {
		catType := category.Type(*req.Type)
		params.Type = &catType
	}
	if req.ParentCategoryID != nil {
		parentID, parseErr := uuid.Parse(*req.ParentCategoryID)
		if parseErr != nil {
			writeError(w, invalidUUID(*req.ParentCategoryID))
			return
		}
		params.ParentCategoryID = &parentID
	}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.service.Update(r.Context(), id, tenantID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *CategoryHandler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
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
