package accounthandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

// Handler serves admin account management. Routes must sit behind
// Authenticate and RequireRole(admin).
type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

type accountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func toAccount(u auth.User) account {
	return account{ID: u.ID, Username: u.Username, Role: u.Role}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.handleList)
	r.Post("/users", h.handleCreate)
	r.Put("/users/{id}", h.handleUpdate)
	r.Delete("/users/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]account, 0, len(users))
	for _, u := range users {
		out = append(out, toAccount(u))
	}
	api.Success(w, out)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload accountRequest
	if err := api.Decode(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	user, err := h.Service.CreateUser(r.Context(), auth.Credentials{
		Username: payload.Username,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, toAccount(user))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.ParseID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Not found", middleware.GetRequestID(r.Context()))
		return
	}
	var payload accountRequest
	if err := api.Decode(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	user, err := h.Service.UpdateUser(r.Context(), id, auth.AccountChanges{
		Username: payload.Username,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		if errors.Is(err, auth.ErrLastAdmin) {
			api.Fail(w, http.StatusBadRequest, "Cannot demote last admin", middleware.GetRequestID(r.Context()))
			return
		}
		writeError(w, r, err)
		return
	}
	api.Success(w, toAccount(user))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.ParseID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Not found", middleware.GetRequestID(r.Context()))
		return
	}
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "Access token required", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.DeleteUser(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		api.Fail(w, http.StatusNotFound, "Not found", reqID)
	case errors.Is(err, auth.ErrCredentialsRequired):
		api.Fail(w, http.StatusBadRequest, "Username and password required", reqID)
	case errors.Is(err, auth.ErrInvalidRole):
		api.Fail(w, http.StatusBadRequest, "Role must be admin or user", reqID)
	case errors.Is(err, auth.ErrUserExists):
		api.Fail(w, http.StatusConflict, "User already exists", reqID)
	case errors.Is(err, auth.ErrSelfDelete):
		api.Fail(w, http.StatusBadRequest, "Cannot delete your own account", reqID)
	case errors.Is(err, auth.ErrLastAdmin):
		api.Fail(w, http.StatusBadRequest, "Cannot delete last admin", reqID)
	default:
		slog.Error("account request failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "Internal server error", reqID)
	}
}
