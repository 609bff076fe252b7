package bills

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
	bills, err := h.service.List(r.Context(), shared.TenantFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, "list bills", err)
		return
	}
	httpx.JSON(w, http.StatusOK, bills)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	bill, err := h.service.Get(r.Context(), id, shared.TenantFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, "get bill", err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	bill, err := h.service.Create(r.Context(), shared.TenantFromContext(r.Context()), req)
	if err != nil {
		h.fail(w, r, "create bill", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, bill)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateBillRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	bill, err := h.service.Update(r.Context(), id, shared.TenantFromContext(r.Context()), req)
	if err != nil {
		h.fail(w, r, "update bill", err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id, shared.TenantFromContext(r.Context())); err != nil {
		h.fail(w, r, "delete bill", err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Bill deleted successfully"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if httpx.RespondError(w, err) {
		h.logger.Error(op+" failed", slog.Any("error", err), slog.String("id", chi.URLParam(r, "id")))
	}
}
