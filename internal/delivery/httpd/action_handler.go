package httpd

import (
	"errors"
	"io"
	"net/http"

	"github.com/classmetrics/student-analytics/internal/models"
	"github.com/classmetrics/student-analytics/internal/repository"
)

// HandleAction is the single action-dispatch endpoint. The outcome is always
// carried in the response envelope; transport status is 200 for every
// recognized payload.
func (h *Handler) HandleAction(w http.ResponseWriter, r *http.Request) {
	// An unreachable store fails the whole request before any action is
	// attempted, whatever the action is.
	if err := h.studentService.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Store unreachable")
		writeJSON(w, http.StatusOK, models.ActionResponse{
			Success: false,
			Message: "Database connection failed. Check if Postgres is running.",
		})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	action, err := models.ParseAction(body)
	if err != nil {
		if errors.Is(err, models.ErrUnknownAction) {
			writeJSON(w, http.StatusOK, models.ActionResponse{
				Success: false,
				Message: "Invalid action",
			})
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()

	switch req := action.(type) {
	case models.CreateAction:
		h.actionCreate(w, r, req)
	case models.ReadAction:
		students, err := h.studentService.ListStudents(ctx, req.Search)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to fetch students")
			writeJSON(w, http.StatusOK, models.ActionResponse{
				Success: false,
				Message: "Failed to fetch students: " + err.Error(),
			})
			return
		}
		if students == nil {
			students = []models.Student{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"students": students,
		})
	case models.UpdateAction:
		h.actionUpdate(w, r, req)
	case models.DeleteAction:
		h.actionDelete(w, r, req)
	case models.AnalyticsAction:
		snapshot, err := h.analyticsService.GetAnalytics(ctx)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to fetch analytics")
			writeJSON(w, http.StatusOK, models.ActionResponse{
				Success: false,
				Message: "Failed to fetch analytics: " + err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"analytics": snapshot,
		})
	}
}

func (h *Handler) actionCreate(w http.ResponseWriter, r *http.Request, req models.CreateAction) {
	if !req.Valid() {
		writeJSON(w, http.StatusOK, models.ActionResponse{
			Success: false,
			Message: "All fields are required",
		})
		return
	}

	if _, err := h.studentService.CreateStudent(r.Context(), &req.StudentRequest); err != nil {
		writeJSON(w, http.StatusOK, h.failureResponse(err, "Failed to create student"))
		return
	}

	writeJSON(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: "Student created successfully",
	})
}

func (h *Handler) actionUpdate(w http.ResponseWriter, r *http.Request, req models.UpdateAction) {
	if req.ID == nil || !req.Valid() {
		writeJSON(w, http.StatusOK, models.ActionResponse{
			Success: false,
			Message: "All fields are required",
		})
		return
	}

	if err := h.studentService.UpdateStudent(r.Context(), *req.ID, &req.StudentRequest); err != nil {
		writeJSON(w, http.StatusOK, h.failureResponse(err, "Failed to update student"))
		return
	}

	writeJSON(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: "Student updated successfully",
	})
}

func (h *Handler) actionDelete(w http.ResponseWriter, r *http.Request, req models.DeleteAction) {
	if req.ID == nil {
		writeJSON(w, http.StatusOK, models.ActionResponse{
			Success: false,
			Message: "Student ID is required",
		})
		return
	}

	if err := h.studentService.DeleteStudent(r.Context(), *req.ID); err != nil {
		writeJSON(w, http.StatusOK, h.failureResponse(err, "Failed to delete student"))
		return
	}

	writeJSON(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: "Student deleted successfully",
	})
}

// failureResponse maps a service error onto the user-facing envelope. A
// duplicate email keeps its specific message; an unknown id stays generic;
// anything else carries the underlying detail and is logged server-side.
func (h *Handler) failureResponse(err error, notFoundMessage string) models.ActionResponse {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return models.ActionResponse{Success: false, Message: "Email already exists"}
	case errors.Is(err, repository.ErrNotFound):
		return models.ActionResponse{Success: false, Message: notFoundMessage}
	default:
		h.logger.Error().Err(err).Msg("Store operation failed")
		return models.ActionResponse{Success: false, Message: "Database error: " + err.Error()}
	}
}
