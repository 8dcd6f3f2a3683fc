package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/university/internal/app/models"
	"github.com/yigit/university/internal/db"
	"github.com/yigit/university/internal/pkg/apperrors"
	"github.com/yigit/university/internal/pkg/dberrors"
	"github.com/yigit/university/internal/pkg/logger"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.Querier) *StudentRepository {
	return &StudentRepository{db: q, sb: psql}
}

// Create inserts a student and sets its ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("first_name", "last_name").
		Values(student.FirstName, student.LastName).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		logger.Error().Err(err).Str("lastName", student.LastName).Msg("Error executing create student query")
		return dberrors.Classify(err, "error creating student")
	}

	return nil
}

// GetByCourseID retrieves the students enrolled in a course, in insertion order
func (r *StudentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	sql, args, err := r.sb.Select("s.id", "s.first_name", "s.last_name").
		From("students s").
		Join("course_students cs ON cs.student_id = s.id").
		Where(squirrel.Eq{"cs.course_id": courseID}).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get students by course query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Classify(err, "error querying students")
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(&student.ID, &student.FirstName, &student.LastName); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, dberrors.Classify(err, "error iterating student rows")
	}

	return students, nil
}

// Delete removes a student; its enrollments go with it (ON DELETE CASCADE)
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Classify(err, "error deleting student")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("student %d not found", id))
	}

	return nil
}
