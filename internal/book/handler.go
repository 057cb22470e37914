// AngelaMos | 2026
// handler.go

package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/bookhive/internal/core"
	"github.com/carterperez-dev/bookhive/internal/middleware"
	"github.com/carterperez-dev/bookhive/internal/storage"
)

const maxMultipartMemory = 8 << 20

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

	r.Post("/", h.Create)
	r.Get("/", h.FindAllDiscoverable)
	r.Get("/owner", h.FindAllByOwner)
	r.Get("/borrowed", h.FindAllBorrowed)
	r.Get("/returned", h.FindAllReturned)
	r.Get("/{bookID}", h.FindByID)
	r.Patch("/shareable/{bookID}", h.ToggleShareable)
	r.Patch("/archived/{bookID}", h.ToggleArchived)
	r.Post("/borrow/{bookID}", h.Borrow)
	r.Patch("/borrow/return/{bookID}", h.Return)
	r.Patch("/borrow/return/approve/{bookID}", h.ApproveReturn)
	r.Post("/cover/{bookID}", h.UploadCover)

	return r
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationError(err))
		return
	}

	id, err := h.service.Create(
		r.Context(), req, middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.Created(w, IDResponse{ID: id})
}

func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.FindByID(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) FindAllDiscoverable(
	w http.ResponseWriter,
	r *http.Request,
) {
	page, size := core.ParsePagination(r)

	books, total, err := h.service.FindAllDiscoverable(
		r.Context(), middleware.GetUserID(r.Context()), page, size,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.Paginated(w, books, page, size, total)
}

func (h *Handler) FindAllByOwner(w http.ResponseWriter, r *http.Request) {
	page, size := core.ParsePagination(r)

	books, total, err := h.service.FindAllByOwner(
		r.Context(), middleware.GetUserID(r.Context()), page, size,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.Paginated(w, books, page, size, total)
}

func (h *Handler) FindAllBorrowed(w http.ResponseWriter, r *http.Request) {
	page, size := core.ParsePagination(r)

	rows, total, err := h.service.FindAllBorrowed(
		r.Context(), middleware.GetUserID(r.Context()), page, size,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.Paginated(w, rows, page, size, total)
}

func (h *Handler) FindAllReturned(w http.ResponseWriter, r *http.Request) {
	page, size := core.ParsePagination(r)

	rows, total, err := h.service.FindAllReturned(
		r.Context(), middleware.GetUserID(r.Context()), page, size,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.Paginated(w, rows, page, size, total)
}

func (h *Handler) ToggleShareable(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.ToggleShareable(
		r.Context(),
		chi.URLParam(r, "bookID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, IDResponse{ID: id})
}

func (h *Handler) ToggleArchived(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.ToggleArchived(
		r.Context(),
		chi.URLParam(r, "bookID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, IDResponse{ID: id})
}

func (h *Handler) Borrow(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.Borrow(
		r.Context(),
		chi.URLParam(r, "bookID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, IDResponse{ID: id})
}

func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.Return(
		r.Context(),
		chi.URLParam(r, "bookID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, IDResponse{ID: id})
}

func (h *Handler) ApproveReturn(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.ApproveReturn(
		r.Context(),
		chi.URLParam(r, "bookID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, IDResponse{ID: id})
}

func (h *Handler) UploadCover(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		core.BadRequest(w, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		core.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	err = h.service.UploadCover(
		r.Context(),
		chi.URLParam(r, "bookID"),
		middleware.GetUserID(r.Context()),
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			core.BadRequest(w, "file exceeds maximum upload size")
		case errors.Is(err, storage.ErrUnsupportedType):
			core.BadRequest(w, "unsupported file type")
		default:
			writeServiceError(w, err)
		}
		return
	}

	core.Accepted(w, nil)
}

func writeServiceError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}
	core.InternalServerError(w, err)
}
