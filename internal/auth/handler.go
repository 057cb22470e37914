// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/bookhive/internal/core"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/authenticate", h.Authenticate)
	r.Get("/activate-account", h.ActivateAccount)

	return r
}

// Register creates a disabled account and queues the activation email.
// The 202 reflects that activation is still outstanding.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.Conflict(w, "email already registered")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Accepted(w, nil)
}

func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthenticationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("token")
	if code == "" {
		core.BadRequest(w, "token is required")
		return
	}

	err := h.service.ActivateAccount(r.Context(), code)
	switch {
	case err == nil:
		core.OK(w, map[string]string{"message": "account activated"})
	case errors.Is(err, ErrExpiredToken):
		core.BadRequest(
			w,
			"activation token has expired, a new token has been sent",
		)
	case errors.Is(err, ErrInvalidToken):
		core.BadRequest(w, "invalid activation token")
	default:
		core.InternalServerError(w, err)
	}
}
