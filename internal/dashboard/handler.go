package dashboard

import (
	"log/slog"
	"net/http"

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

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), shared.TenantFromContext(r.Context()))
	if err != nil {
		if httpx.RespondError(w, err) {
			h.logger.Error("dashboard stats failed", slog.Any("error", err))
		}
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
