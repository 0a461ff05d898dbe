package httpd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/classmetrics/student-analytics/internal/models"
	"github.com/classmetrics/student-analytics/internal/repository"
)

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !req.Valid() {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	ctx := r.Context()
	student, err := h.studentService.CreateStudent(ctx, &req)
	if err != nil {
		h.handleStudentError(w, err)
		return
	}

	writeSuccess(w, student)
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	ctx := r.Context()
	students, err := h.studentService.ListStudents(ctx, search)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get students")
		writeError(w, http.StatusInternalServerError, "Failed to get students")
		return
	}

	if students == nil {
		students = []models.Student{}
	}

	response := map[string]interface{}{
		"students": students,
		"total":    len(students),
	}

	writeSuccess(w, response)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	var req models.StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !req.Valid() {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	ctx := r.Context()
	if err := h.studentService.UpdateStudent(ctx, id, &req); err != nil {
		h.handleStudentError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Student updated successfully",
	})
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	ctx := r.Context()
	if err := h.studentService.DeleteStudent(ctx, id); err != nil {
		h.handleStudentError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Student deleted successfully",
	})
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snapshot, err := h.analyticsService.GetAnalytics(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to compute analytics")
		writeError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	writeSuccess(w, snapshot)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) handleStudentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Student not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "Email already exists")
	default:
		h.logger.Error().Err(err).Msg("Student service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
