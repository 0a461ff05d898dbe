package models

// AnalyticsSnapshot is recomputed from the current student set on every
// request; it is never persisted.
type AnalyticsSnapshot struct {
	TopStudents       []TopStudent      `json:"top_students"`
	CourseRanking     []CourseRanking   `json:"course_ranking"`
	GradeDistribution GradeDistribution `json:"grade_distribution"`
}

// TopStudent is a student whose grade is strictly above the current mean.
type TopStudent struct {
	Name  string `json:"name"`
	Grade int    `json:"grade"`
}

type CourseRanking struct {
	Course       string  `json:"course"`
	AvgGrade     float64 `json:"avg_grade"`
	StudentCount int     `json:"student_count"`
}

// GradeDistribution partitions every student into exactly one bucket.
// Boundary values belong to the higher bucket: grade 90 is A, grade 80 is B.
type GradeDistribution struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
	F int `json:"F"`
}
