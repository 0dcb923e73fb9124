package authhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
)

type Handler struct {
	Service *auth.Service
	Secret  string
}

func NewHandler(service *auth.Service, secret string) *Handler {
	return &Handler{Service: service, Secret: secret}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type publicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Get("/content/guest", h.HandleGuestContent)
	r.With(middleware.Authenticate(h.Secret)).Get("/profile", h.HandleProfile)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload credentialsRequest
	if err := api.Decode(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload", reqID)
		return
	}

	user, err := h.Service.Register(r.Context(), auth.Credentials{
		Username: payload.Username,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		writeAccountError(w, r, err)
		return
	}

	api.Created(w, map[string]string{
		"message":  "User registered",
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload credentialsRequest
	if err := api.Decode(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload", reqID)
		return
	}

	token, user, err := h.Service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "Invalid credentials", reqID)
			return
		}
		slog.Error("login failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "Internal server error", reqID)
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  publicUser{ID: user.ID, Username: user.Username, Role: user.Role, Email: user.Username},
	})
}

// HandleProfile echoes the identity carried by the caller's token.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "Access token required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"user": map[string]any{"id": user.UserID, "username": user.Username, "role": user.Role},
	})
}

func (h *Handler) HandleGuestContent(w http.ResponseWriter, r *http.Request) {
	api.Success(w, api.Message{Message: "Public content for all visitors"})
}

// writeAccountError maps account errors to their HTTP status and message.
func writeAccountError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, auth.ErrCredentialsRequired):
		api.Fail(w, http.StatusBadRequest, "Username and password required", reqID)
	case errors.Is(err, auth.ErrInvalidRole):
		api.Fail(w, http.StatusBadRequest, "Role must be admin or user", reqID)
	case errors.Is(err, auth.ErrAdminSignupDisabled):
		api.Fail(w, http.StatusForbidden, "Admin registration is disabled", reqID)
	case errors.Is(err, auth.ErrUserExists):
		api.Fail(w, http.StatusConflict, "User already exists", reqID)
	default:
		slog.Error("account operation failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "Internal server error", reqID)
	}
}
