package reportshandler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/reports"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
)

// Handler serves admin dashboards and roster exports. Routes must sit behind
// Authenticate and RequireRole(admin).
type Handler struct {
	Service *reports.Service
	Now     func() time.Time
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service, Now: time.Now}
}

type exportFormat struct {
	contentType string
	extension   string
}

var exportFormats = map[string]exportFormat{
	"pdf":  {contentType: "application/pdf", extension: "pdf"},
	"xlsx": {contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", extension: "xlsx"},
	"csv":  {contentType: "text/csv", extension: "csv"},
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/dashboard", h.handleDashboard)
	r.Get("/employees/export", h.handleExportRoster)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	dashboard, err := h.Service.Dashboard(r.Context())
	if err != nil {
		slog.Error("dashboard failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "Internal server error", reqID)
		return
	}
	api.Success(w, map[string]any{
		"message": "Welcome to admin dashboard!",
		"data":    dashboard,
	})
}

func (h *Handler) handleExportRoster(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	name := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if name == "" {
		name = "pdf"
	}
	format, ok := exportFormats[name]
	if !ok {
		api.Fail(w, http.StatusBadRequest, "Format must be pdf, xlsx or csv", reqID)
		return
	}

	roster, err := h.Service.Roster(r.Context())
	if err != nil {
		slog.Error("roster load failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "Internal server error", reqID)
		return
	}

	var data []byte
	switch name {
	case "pdf":
		data, err = reports.RenderPDF(roster, h.Now())
	case "xlsx":
		data, err = reports.RenderXLSX(roster)
	default:
		data, err = reports.RenderCSV(roster)
	}
	if err != nil {
		slog.Error("roster render failed", "format", name, "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "Internal server error", reqID)
		return
	}

	w.Header().Set("Content-Type", format.contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=employee-roster."+format.extension)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Warn("roster export write failed", "err", err, "requestId", reqID)
	}
}
