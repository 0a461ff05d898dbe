package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/classmetrics/student-analytics/internal/models"
	"github.com/classmetrics/student-analytics/internal/repository"
)

// SampleStudents is the canonical demo data set, inserted only when the
// students table is empty.
var SampleStudents = []models.Student{
	{Name: "John Smith", Email: "john.smith@example.com", Course: "Computer Science", Grade: 85},
	{Name: "Emma Johnson", Email: "emma.johnson@example.com", Course: "Mathematics", Grade: 92},
	{Name: "Michael Brown", Email: "michael.brown@example.com", Course: "Physics", Grade: 78},
	{Name: "Sarah Davis", Email: "sarah.davis@example.com", Course: "Engineering", Grade: 88},
	{Name: "David Wilson", Email: "david.wilson@example.com", Course: "Business", Grade: 76},
	{Name: "Lisa Miller", Email: "lisa.miller@example.com", Course: "Computer Science", Grade: 95},
	{Name: "James Taylor", Email: "james.taylor@example.com", Course: "Mathematics", Grade: 82},
	{Name: "Jennifer Anderson", Email: "jennifer.anderson@example.com", Course: "Physics", Grade: 89},
}

func Seed(ctx context.Context, repo repository.StudentRepository, log zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, sample := range SampleStudents {
		student := sample
		if err := repo.Create(ctx, &student); err != nil {
			return fmt.Errorf("failed to seed student %s: %w", sample.Email, err)
		}
	}

	log.Info().Int("students", len(SampleStudents)).Msg("Seeded sample students")
	return nil
}
