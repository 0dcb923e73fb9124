package requesthandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/requests"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

// Handler serves the caller's own requests. Routes must sit behind Authenticate.
type Handler struct {
	Service *requests.Service
}

func NewHandler(service *requests.Service) *Handler {
	return &Handler{Service: service}
}

// Status is ignored if a client sends one.
type createRequest struct {
	Type  string          `json:"type"`
	Items []requests.Item `json:"items"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/requests", h.handleList)
	r.Post("/requests", h.handleCreate)
	r.Delete("/requests/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "Access token required", middleware.GetRequestID(r.Context()))
		return
	}
	list, err := h.Service.ListForOwner(r.Context(), user.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "Access token required", reqID)
		return
	}
	var payload createRequest
	if err := api.Decode(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("type", payload.Type, "is required")
	for _, item := range payload.Items {
		v.Required("items.name", item.Name, "is required")
		v.Positive("items.qty", item.Qty, "must be at least 1")
	}
	if v.Reject(w, "Invalid payload", reqID) {
		return
	}

	created, err := h.Service.Create(r.Context(), user.Username, requests.NewRequest{Type: payload.Type, Items: payload.Items})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, created)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.ParseID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Not found", reqID)
		return
	}
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "Access token required", reqID)
		return
	}
	if err := h.Service.Delete(r.Context(), user.Username, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, requests.ErrRequestNotFound):
		api.Fail(w, http.StatusNotFound, "Not found", reqID)
	case errors.Is(err, requests.ErrTypeRequired), errors.Is(err, requests.ErrInvalidItem):
		api.Fail(w, http.StatusBadRequest, "Invalid payload", reqID)
	default:
		slog.Error("request operation failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "Internal server error", reqID)
	}
}
