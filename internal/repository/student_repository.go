package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/classmetrics/student-analytics/internal/models"
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, search string) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

type studentRepository struct {
	*PostgresRepository
}

func NewStudentRepository(db *sql.DB, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, email, course, grade)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		student.Name,
		student.Email,
		student.Course,
		student.Grade,
	).Scan(&student.ID, &student.CreatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}

	return err
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, name, email, course, grade, created_at
		FROM students
		WHERE id = $1
	`

	student := &models.Student{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Course,
		&student.Grade,
		&student.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return student, err
}

func (r *studentRepository) List(ctx context.Context, search string) ([]models.Student, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if search != "" {
		query := `
			SELECT id, name, email, course, grade, created_at
			FROM students
			WHERE name ILIKE $1 OR email ILIKE $1 OR course ILIKE $1
			ORDER BY id DESC
		`
		rows, err = r.db.QueryContext(ctx, query, "%"+search+"%")
	} else {
		query := `
			SELECT id, name, email, course, grade, created_at
			FROM students
			ORDER BY id DESC
		`
		rows, err = r.db.QueryContext(ctx, query)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Course,
			&student.Grade,
			&student.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, email = $2, course = $3, grade = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		student.Name,
		student.Email,
		student.Course,
		student.Grade,
		student.ID,
	)

	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM students WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *studentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	return count, err
}
