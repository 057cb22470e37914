// AngelaMos | 2026
// handler.go

package feedback

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/bookhive/internal/core"
	"github.com/carterperez-dev/bookhive/internal/middleware"
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

	r.Post("/", h.Save)
	r.Get("/book/{bookID}", h.FindAllByBook)

	return r
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationError(err))
		return
	}

	id, err := h.service.Save(
		r.Context(), req, middleware.GetUserID(r.Context()),
	)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, IDResponse{ID: id})
}

func (h *Handler) FindAllByBook(w http.ResponseWriter, r *http.Request) {
	page, size := core.ParsePagination(r)

	responses, total, err := h.service.FindAllByBook(
		r.Context(),
		chi.URLParam(r, "bookID"),
		middleware.GetUserID(r.Context()),
		page, size,
	)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, responses, page, size, total)
}
