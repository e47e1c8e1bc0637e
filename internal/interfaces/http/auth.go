package http

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"forge/internal/domain/user"
	"forge/internal/shared/apperror"
	"forge/internal/shared/auth"
)

type AuthHandler struct {
	userRepo user.Repository
	jwt      *auth.JWT
}

func NewAuthHandler(userRepo user.Repository, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, jwt: jwt}
}

type RegisterRequest struct {
	TenantID  string `json:"tenantId"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenantId"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		TenantID:    u.TenantID.String(),
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		writeError(w, invalidUUID(req.TenantID))
		return
	}
	if len(req.Password) < 8 {
		writeError(w, apperror.Validation("password must be at least 8 characters"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		writeError(w, apperror.Internal("could not process registration"))
		return
	}

	params := user.CreateParams{
		TenantID:     tenantID,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.userRepo.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.jwt.Generate(u.ID, u.TenantID, u.Email)
	if err != nil {
		log.Printf("Error generating token for user %s: %v", u.ID, err)
		writeError(w, apperror.Internal("could not issue token"))
		return
	}

	setAuthCookie(w, token)
	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(u)})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil || !u.IsActive || auth.VerifyPassword(u.PasswordHash, req.Password) != nil {
		// One message for every failure mode so the endpoint cannot be used
		// to probe which emails exist.
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := h.userRepo.UpdateLastLogin(r.Context(), u.ID); err != nil {
		log.Printf("Error updating last login for user %s: %v", u.ID, err)
	}

	token, err := h.jwt.Generate(u.ID, u.TenantID, u.Email)
	if err != nil {
		log.Printf("Error generating token for user %s: %v", u.ID, err)
		writeError(w, apperror.Internal("could not issue token"))
		return
	}

	setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: toUserResponse(u)})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
