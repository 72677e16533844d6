package student

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"student-records-service/internal/httputil"
	"student-records-service/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  m,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/students", h.GetAllStudents)
	router.Post("/students", h.CreateStudent)
	router.Get("/students/{id}", h.GetStudent)
	router.Put("/students/{id}", h.UpdateStudent)
	router.Patch("/students/{id}/gpa", h.UpdateGPA)
	router.Patch("/students/{id}/status", h.UpdateStatus)
	router.Delete("/students/{id}", h.DeleteStudent)
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Major:  r.URL.Query().Get("major"),
		Status: r.URL.Query().Get("status"),
	}

	h.logger.InfoContext(r.Context(), "fetching students", "major", filter.Major, "status", filter.Status)

	list, err := h.service.GetAllStudents(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordStudentsListViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, list)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	student, err := h.service.GetStudentByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordStudentViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, student)
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.InfoContext(r.Context(), "creating student", "student_code", req.StudentCode)

	created, err := h.service.CreateStudent(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordStudentCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	var req UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.InfoContext(r.Context(), "updating student", "id", id)

	updated, err := h.service.UpdateStudent(r.Context(), id, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) UpdateGPA(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	var req UpdateGPARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "gpa is required")
		return
	}

	h.logger.InfoContext(r.Context(), "updating student gpa", "id", id)

	updated, err := h.service.UpdateGPA(r.Context(), id, *req.GPA)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordGPAUpdated(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "status is required")
		return
	}

	h.logger.InfoContext(r.Context(), "updating student status", "id", id, "status", req.Status)

	updated, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordStatusChanged(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "deleting student", "id", id)

	if err := h.service.DeleteStudent(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordStudentDeleted(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// parseID reads the path id. A non-numeric or non-positive id is the same
// validation failure the service raises, so it maps to 400 rather than 404.
func parseID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Field: "id", Value: raw, Message: "must be a positive integer"}
	}
	return id, nil
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		httputil.RespondWithError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		httputil.RespondWithError(w, http.StatusNotFound, "student not found")
	case errors.As(err, &conflictErr):
		httputil.RespondWithError(w, http.StatusConflict, conflictErr.Error())
	default:
		h.logger.ErrorContext(r.Context(), "internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
