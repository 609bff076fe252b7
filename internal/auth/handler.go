package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/billcollect/billcollect/internal/platform/httpx"
	"github.com/billcollect/billcollect/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	users          UserStore
	sessionManager *shared.SessionManager
	resolver       Resolver
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, store UserStore, sessions *shared.SessionManager, resolver Resolver) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		service:        service,
		users:          store,
		sessionManager: sessions,
		resolver:       resolver,
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.With(RequireTenant(h.resolver, h.logger)).Get("/user", h.handleUser)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicate) {
			httpx.Problem(w, http.StatusConflict, "Duplicate", "User with this email already exists")
			return
		}
		h.fail(w, "register user", err)
		return
	}

	if !h.bindSession(w, r, user.ID) {
		return
	}
	httpx.JSON(w, http.StatusCreated, SessionResponse{Message: "User registered successfully", User: profileOf(user)})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, "login", err)
		return
	}

	if !h.bindSession(w, r, user.ID) {
		return
	}
	httpx.JSON(w, http.StatusOK, SessionResponse{Message: "Logged in successfully", User: profileOf(user)})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		h.sessionManager.Destroy(sess)
	}
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Logged out successfully"})
}

func (h *Handler) handleUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), shared.TenantFromContext(r.Context()))
	if err != nil {
		h.fail(w, "load current user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) bindSession(w http.ResponseWriter, r *http.Request, userID string) bool {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return false
	}
	sess.SetUser(userID)
	return true
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if httpx.RespondError(w, err) {
		h.logger.Error(op+" failed", slog.Any("error", err))
	}
}
