package http

import (
	"net/http"

	"forge/internal/domain/user"
	"forge/internal/shared/middleware"
)

type UserHandler struct {
	userRepo user.Repository
}

func NewUserHandler(userRepo user.Repository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// HandleMe serves the authenticated user's own profile.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetMe(w, r)
	case http.MethodPatch, http.MethodPut:
		h.handleUpdateMe(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *UserHandler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	u, err := h.userRepo.GetByID(r.Context(), actorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	var req UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	params := user.UpdateParams{FirstName: req.FirstName, LastName: req.LastName}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.userRepo.Update(r.Context(), actorID, actorID, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}
