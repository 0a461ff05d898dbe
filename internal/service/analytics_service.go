package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/classmetrics/student-analytics/internal/models"
	"github.com/classmetrics/student-analytics/internal/repository"
)

type AnalyticsService interface {
	GetAnalytics(ctx context.Context) (*models.AnalyticsSnapshot, error)
}

type analyticsService struct {
	studentRepo repository.StudentRepository
	logger      zerolog.Logger
}

func NewAnalyticsService(studentRepo repository.StudentRepository, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// GetAnalytics computes all three reports from a single read of the current
// student set, so the reports are always mutually consistent. If the read
// fails, no partial snapshot is returned.
func (s *analyticsService) GetAnalytics(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	students, err := s.studentRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read students: %w", err)
	}

	snapshot := &models.AnalyticsSnapshot{
		TopStudents:       topStudents(students),
		CourseRanking:     courseRanking(students),
		GradeDistribution: gradeDistribution(students),
	}

	s.logger.Debug().
		Int("students", len(students)).
		Int("top_students", len(snapshot.TopStudents)).
		Int("courses", len(snapshot.CourseRanking)).
		Msg("Analytics snapshot computed")

	return snapshot, nil
}

// topStudents returns every student strictly above the mean grade, ordered
// by grade descending with id ascending as the tie-break. The mean is
// recomputed from the given set on every call, never cached.
func topStudents(students []models.Student) []models.TopStudent {
	top := make([]models.TopStudent, 0)
	if len(students) == 0 {
		return top
	}

	var sum int
	for _, s := range students {
		sum += s.Grade
	}
	avg := float64(sum) / float64(len(students))

	above := make([]models.Student, 0)
	for _, s := range students {
		if float64(s.Grade) > avg {
			above = append(above, s)
		}
	}

	sort.Slice(above, func(i, j int) bool {
		if above[i].Grade != above[j].Grade {
			return above[i].Grade > above[j].Grade
		}
		return above[i].ID < above[j].ID
	})

	for _, s := range above {
		top = append(top, models.TopStudent{Name: s.Name, Grade: s.Grade})
	}

	return top
}

// courseRanking groups students by course and orders the groups by mean
// grade descending, course name ascending on ties. Only courses with at
// least one current student appear.
func courseRanking(students []models.Student) []models.CourseRanking {
	type courseAgg struct {
		sum   int
		count int
	}

	byCourse := make(map[string]*courseAgg)
	for _, s := range students {
		agg, ok := byCourse[s.Course]
		if !ok {
			agg = &courseAgg{}
			byCourse[s.Course] = agg
		}
		agg.sum += s.Grade
		agg.count++
	}

	ranking := make([]models.CourseRanking, 0, len(byCourse))
	for course, agg := range byCourse {
		ranking = append(ranking, models.CourseRanking{
			Course:       course,
			AvgGrade:     float64(agg.sum) / float64(agg.count),
			StudentCount: agg.count,
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].AvgGrade != ranking[j].AvgGrade {
			return ranking[i].AvgGrade > ranking[j].AvgGrade
		}
		return ranking[i].Course < ranking[j].Course
	})

	return ranking
}

// gradeDistribution buckets every student exactly once: A=[90,100],
// B=[80,90), C=[70,80), D=[60,70), F below 60. The store does not range
// check grades, so values above 100 count as A and negatives as F; the
// bucket counts always sum to the total student count.
func gradeDistribution(students []models.Student) models.GradeDistribution {
	var dist models.GradeDistribution
	for _, s := range students {
		switch {
		case s.Grade >= 90:
			dist.A++
		case s.Grade >= 80:
			dist.B++
		case s.Grade >= 70:
			dist.C++
		case s.Grade >= 60:
			dist.D++
		default:
			dist.F++
		}
	}

	return dist
}
