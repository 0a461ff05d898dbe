package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/classmetrics/student-analytics/internal/models"
	"github.com/classmetrics/student-analytics/internal/repository"
	"github.com/classmetrics/student-analytics/internal/service/integration"
)

type StudentService interface {
	CreateStudent(ctx context.Context, req *models.StudentRequest) (*models.Student, error)
	ListStudents(ctx context.Context, search string) ([]models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *models.StudentRequest) error
	DeleteStudent(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type studentService struct {
	studentRepo repository.StudentRepository
	events      integration.EventPublisher
	logger      zerolog.Logger
}

func NewStudentService(
	studentRepo repository.StudentRepository,
	events integration.EventPublisher,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		events:      events,
		logger:      logger,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, req *models.StudentRequest) (*models.Student, error) {
	student := &models.Student{
		Name:   req.Name,
		Email:  req.Email,
		Course: req.Course,
		Grade:  *req.Grade,
	}

	// The unique constraint on email rejects duplicates atomically; no
	// lookup beforehand, so concurrent creates cannot race past a check.
	if err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().
		Int64("student_id", student.ID).
		Str("email", student.Email).
		Msg("Student created")

	s.publishEvent(ctx, models.StudentCreated, student.ID, student.Email)

	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, search string) ([]models.Student, error) {
	students, err := s.studentRepo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return students, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id int64, req *models.StudentRequest) error {
	student := &models.Student{
		ID:     id,
		Name:   req.Name,
		Email:  req.Email,
		Course: req.Course,
		Grade:  *req.Grade,
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update student: %w", err)
	}

	s.logger.Info().
		Int64("student_id", id).
		Msg("Student updated")

	s.publishEvent(ctx, models.StudentUpdated, id, student.Email)

	return nil
}

func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.logger.Info().
		Int64("student_id", id).
		Msg("Student deleted")

	s.publishEvent(ctx, models.StudentDeleted, id, "")

	return nil
}

// Ping reports whether the record store is reachable.
func (s *studentService) Ping(ctx context.Context) error {
	return s.studentRepo.Ping(ctx)
}

// publishEvent notifies downstream consumers about a completed write.
// The broker is optional; a publish failure is logged and never surfaced.
func (s *studentService) publishEvent(ctx context.Context, action string, id int64, email string) {
	if s.events == nil {
		return
	}

	event := &models.StudentChangedEvent{
		EventID:   uuid.New().String(),
		Action:    action,
		StudentID: id,
		Email:     email,
		Timestamp: time.Now().Unix(),
	}

	if err := s.events.PublishStudentChanged(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("action", action).
			Int64("student_id", id).
			Msg("Failed to publish student event")
	}
}
