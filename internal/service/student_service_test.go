package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/classmetrics/student-analytics/internal/models"
	"github.com/classmetrics/student-analytics/internal/repository"
)

type fakePublisher struct {
	events []models.StudentChangedEvent
	err    error
}

func (f *fakePublisher) PublishStudentChanged(ctx context.Context, event *models.StudentChangedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func intPtr(v int) *int { return &v }

func TestStudentService_CreateStudent(t *testing.T) {
	t.Run("assigns id and publishes event", func(t *testing.T) {
		repo := newFakeStudentRepo()
		pub := &fakePublisher{}
		svc := NewStudentService(repo, pub, zerolog.Nop())

		student, err := svc.CreateStudent(context.Background(), &models.StudentRequest{
			Name:   "Test Student",
			Email:  "test@example.com",
			Course: "Physics",
			Grade:  intPtr(81),
		})
		if err != nil {
			t.Fatalf("failed to create student: %v", err)
		}

		if student.ID == 0 {
			t.Error("expected a fresh id to be assigned")
		}
		if student.CreatedAt.IsZero() {
			t.Error("expected created_at to be assigned")
		}

		students, err := svc.ListStudents(context.Background(), "")
		if err != nil {
			t.Fatalf("failed to list students: %v", err)
		}
		if len(students) != 1 || students[0].Email != "test@example.com" {
			t.Errorf("expected the new student in the list, got %+v", students)
		}

		if len(pub.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(pub.events))
		}
		event := pub.events[0]
		if event.Action != models.StudentCreated || event.StudentID != student.ID {
			t.Errorf("unexpected event %+v", event)
		}
		if event.EventID == "" {
			t.Error("expected event id to be set")
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		repo := newFakeStudentRepo()
		svc := NewStudentService(repo, nil, zerolog.Nop())

		req := &models.StudentRequest{
			Name:   "First",
			Email:  "dup@example.com",
			Course: "Math",
			Grade:  intPtr(70),
		}
		if _, err := svc.CreateStudent(context.Background(), req); err != nil {
			t.Fatalf("first create failed: %v", err)
		}

		second := &models.StudentRequest{
			Name:   "Second",
			Email:  "dup@example.com",
			Course: "Physics",
			Grade:  intPtr(90),
		}
		_, err := svc.CreateStudent(context.Background(), second)
		if !errors.Is(err, repository.ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}

		students, _ := svc.ListStudents(context.Background(), "")
		if len(students) != 1 {
			t.Errorf("expected exactly one row for the email, got %d", len(students))
		}
	})

	t.Run("publish failure is not surfaced", func(t *testing.T) {
		repo := newFakeStudentRepo()
		pub := &fakePublisher{err: errors.New("broker down")}
		svc := NewStudentService(repo, pub, zerolog.Nop())

		_, err := svc.CreateStudent(context.Background(), &models.StudentRequest{
			Name:   "Test",
			Email:  "test@example.com",
			Course: "Math",
			Grade:  intPtr(50),
		})
		if err != nil {
			t.Fatalf("create should succeed despite publish failure, got %v", err)
		}
	})
}

func TestStudentService_ListStudents(t *testing.T) {
	repo := newFakeStudentRepo()
	seedSampleStudents(t, repo)
	svc := NewStudentService(repo, nil, zerolog.Nop())

	t.Run("orders by id descending", func(t *testing.T) {
		students, err := svc.ListStudents(context.Background(), "")
		if err != nil {
			t.Fatalf("failed to list students: %v", err)
		}
		if len(students) != 8 {
			t.Fatalf("expected 8 students, got %d", len(students))
		}
		for i := 1; i < len(students); i++ {
			if students[i-1].ID < students[i].ID {
				t.Fatalf("expected descending ids, got %d before %d", students[i-1].ID, students[i].ID)
			}
		}
	})

	t.Run("search matches any of name, email, course", func(t *testing.T) {
		students, err := svc.ListStudents(context.Background(), "computer")
		if err != nil {
			t.Fatalf("failed to search students: %v", err)
		}
		if len(students) != 2 {
			t.Fatalf("expected 2 matches for 'computer', got %d", len(students))
		}

		students, err = svc.ListStudents(context.Background(), "jennifer.anderson")
		if err != nil {
			t.Fatalf("failed to search students: %v", err)
		}
		if len(students) != 1 {
			t.Fatalf("expected 1 match by email, got %d", len(students))
		}
	})
}

func TestStudentService_UpdateStudent(t *testing.T) {
	t.Run("replaces mutable fields", func(t *testing.T) {
		repo := newFakeStudentRepo()
		pub := &fakePublisher{}
		svc := NewStudentService(repo, pub, zerolog.Nop())

		student, err := svc.CreateStudent(context.Background(), &models.StudentRequest{
			Name:   "Before",
			Email:  "before@example.com",
			Course: "Math",
			Grade:  intPtr(60),
		})
		if err != nil {
			t.Fatalf("failed to create student: %v", err)
		}

		err = svc.UpdateStudent(context.Background(), student.ID, &models.StudentRequest{
			Name:   "After",
			Email:  "after@example.com",
			Course: "Physics",
			Grade:  intPtr(99),
		})
		if err != nil {
			t.Fatalf("failed to update student: %v", err)
		}

		students, _ := svc.ListStudents(context.Background(), "")
		got := students[0]
		if got.Name != "After" || got.Email != "after@example.com" || got.Course != "Physics" || got.Grade != 99 {
			t.Errorf("update did not replace fields: %+v", got)
		}
		if got.ID != student.ID {
			t.Errorf("id must be stable across updates: %d != %d", got.ID, student.ID)
		}

		if len(pub.events) != 2 || pub.events[1].Action != models.StudentUpdated {
			t.Errorf("expected an update event, got %+v", pub.events)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := newFakeStudentRepo()
		svc := NewStudentService(repo, nil, zerolog.Nop())

		err := svc.UpdateStudent(context.Background(), 42, &models.StudentRequest{
			Name:   "Ghost",
			Email:  "ghost@example.com",
			Course: "Math",
			Grade:  intPtr(10),
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("email taken by another student", func(t *testing.T) {
		repo := newFakeStudentRepo()
		svc := NewStudentService(repo, nil, zerolog.Nop())

		first, _ := svc.CreateStudent(context.Background(), &models.StudentRequest{
			Name: "First", Email: "first@example.com", Course: "Math", Grade: intPtr(50),
		})
		_, _ = svc.CreateStudent(context.Background(), &models.StudentRequest{
			Name: "Second", Email: "second@example.com", Course: "Math", Grade: intPtr(60),
		})

		err := svc.UpdateStudent(context.Background(), first.ID, &models.StudentRequest{
			Name: "First", Email: "second@example.com", Course: "Math", Grade: intPtr(50),
		})
		if !errors.Is(err, repository.ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})
}

func TestStudentService_DeleteStudent(t *testing.T) {
	t.Run("removes the row", func(t *testing.T) {
		repo := newFakeStudentRepo()
		pub := &fakePublisher{}
		svc := NewStudentService(repo, pub, zerolog.Nop())

		student, _ := svc.CreateStudent(context.Background(), &models.StudentRequest{
			Name: "Doomed", Email: "doomed@example.com", Course: "Math", Grade: intPtr(40),
		})

		if err := svc.DeleteStudent(context.Background(), student.ID); err != nil {
			t.Fatalf("failed to delete student: %v", err)
		}

		students, _ := svc.ListStudents(context.Background(), "")
		if len(students) != 0 {
			t.Errorf("expected empty store after delete, got %d rows", len(students))
		}

		if len(pub.events) != 2 || pub.events[1].Action != models.StudentDeleted {
			t.Errorf("expected a delete event, got %+v", pub.events)
		}
	})

	t.Run("unknown id leaves other rows intact", func(t *testing.T) {
		repo := newFakeStudentRepo()
		seedSampleStudents(t, repo)
		svc := NewStudentService(repo, nil, zerolog.Nop())

		err := svc.DeleteStudent(context.Background(), 999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}

		students, _ := svc.ListStudents(context.Background(), "")
		if len(students) != 8 {
			t.Errorf("expected all 8 rows untouched, got %d", len(students))
		}
	})
}
