package corehandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/core"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

const msgInvalid = "Invalid payload"

// Handler serves the employee and department directories. Routes must sit
// behind Authenticate and RequireRole(admin).
type Handler struct {
	Service *core.Service
}

func NewHandler(service *core.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleListEmployees)
	r.Post("/employees", h.handleCreateEmployee)
	r.Put("/employees/{id}", h.handleUpdateEmployee)
	r.Delete("/employees/{id}", h.handleDeleteEmployee)

	r.Get("/departments", h.handleListDepartments)
	r.Post("/departments", h.handleCreateDepartment)
	r.Put("/departments/{id}", h.handleUpdateDepartment)
	r.Delete("/departments/{id}", h.handleDeleteDepartment)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, employees)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload core.Employee
	if err := api.Decode(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "is required")
	v.Required("userEmail", payload.UserEmail, "is required")
	v.OptionalDate("hireDate", payload.HireDate)
	if v.Reject(w, msgInvalid, reqID) {
		return
	}

	emp, err := h.Service.CreateEmployee(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, emp)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.ParseID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Not found", reqID)
		return
	}
	var patch core.EmployeePatch
	if err := api.Decode(r, &patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	if patch.EmployeeID != nil {
		v.Required("employeeId", *patch.EmployeeID, "must not be empty")
	}
	if patch.UserEmail != nil {
		v.Required("userEmail", *patch.UserEmail, "must not be empty")
	}
	if patch.HireDate != nil {
		v.OptionalDate("hireDate", *patch.HireDate)
	}
	if v.Reject(w, msgInvalid, reqID) {
		return
	}

	emp, err := h.Service.UpdateEmployee(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, emp)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.ParseID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, departments)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload core.Department
	if err := api.Decode(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	if v.Reject(w, msgInvalid, reqID) {
		return
	}

	dep, err := h.Service.CreateDepartment(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, dep)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.ParseID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Not found", reqID)
		return
	}
	var patch core.DepartmentPatch
	if err := api.Decode(r, &patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	if patch.Name != nil {
		v.Required("name", *patch.Name, "must not be empty")
	}
	if v.Reject(w, msgInvalid, reqID) {
		return
	}

	dep, err := h.Service.UpdateDepartment(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, dep)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.ParseID(r, "id")
	if !ok {
		api.Fail(w, http.StatusNotFound, "Not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.DeleteDepartment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	if errors.Is(err, core.ErrEmployeeNotFound) || errors.Is(err, core.ErrDepartmentNotFound) {
		api.Fail(w, http.StatusNotFound, "Not found", reqID)
		return
	}
	slog.Error("directory request failed", "err", err, "requestId", reqID)
	api.Fail(w, http.StatusInternalServerError, "Internal server error", reqID)
}
