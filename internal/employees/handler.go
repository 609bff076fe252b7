package employees

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/billcollect/billcollect/internal/platform/httpx"
	"github.com/billcollect/billcollect/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context(), shared.TenantFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, "list employees", err)
		return
	}
	httpx.JSON(w, http.StatusOK, employees)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	employee, err := h.service.Get(r.Context(), id, shared.TenantFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, "get employee", err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	employee, err := h.service.Create(r.Context(), shared.TenantFromContext(r.Context()), req)
	if err != nil {
		h.fail(w, r, "create employee", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, employee)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateEmployeeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	employee, err := h.service.Update(r.Context(), id, shared.TenantFromContext(r.Context()), req)
	if err != nil {
		h.fail(w, r, "update employee", err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id, shared.TenantFromContext(r.Context())); err != nil {
		h.fail(w, r, "delete employee", err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Employee deleted successfully"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if httpx.RespondError(w, err) {
		h.logger.Error(op+" failed", slog.Any("error", err), slog.String("id", chi.URLParam(r, "id")))
	}
}
